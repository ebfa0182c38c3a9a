package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"idiomastery/internal/domain"

	"go.uber.org/zap"
)

// expectedRows is how many vocabulary rows one topic request asks for
const expectedRows = 20

// pipe-separated field layout of one generated row
const rowFields = 9

// VocabAPI calls a generative text endpoint that returns vocabulary as
// pipe-separated rows
type VocabAPI struct {
	url    string
	client *http.Client
	logger *zap.Logger
}

// NewVocabAPI creates a client for the given endpoint URL
func NewVocabAPI(url string, logger *zap.Logger) *VocabAPI {
	return &VocabAPI{
		url:    url,
		client: &http.Client{Timeout: 30 * time.Second},
		logger: logger,
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Role  string `json:"role"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// FetchEntries asks the endpoint for vocabulary on the given topic.
// Malformed rows are skipped; fewer than the expected row count is an
// error.
func (v *VocabAPI) FetchEntries(topic string) ([]domain.Entry, error) {
	prompt := fmt.Sprintf(
		"Provide %d Polish-English-Spanish verbs related to the topic %q. "+
			"For each verb, include a short sentence using the verb and a short definition. "+
			"Format the output as pipe-separated values: "+
			"polish|english|spanish|polishSentence|englishSentence|spanishSentence|polishDefinition|englishDefinition|spanishDefinition. "+
			"One verb per line.",
		expectedRows, topic,
	)

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return nil, err
	}

	resp, err := v.client.Post(v.url, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("vocabulary request failed: %w", err)
	}
	defer resp.Body.Close()

	var apiData generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiData); err != nil {
		return nil, fmt.Errorf("failed to decode vocabulary response: %w", err)
	}

	if resp.StatusCode != http.StatusOK || len(apiData.Candidates) == 0 || len(apiData.Candidates[0].Content.Parts) == 0 {
		if apiData.Error.Message != "" {
			return nil, fmt.Errorf("vocabulary request rejected: %s", apiData.Error.Message)
		}
		return nil, fmt.Errorf("vocabulary request failed with status %d", resp.StatusCode)
	}

	entries := v.parseRows(apiData.Candidates[0].Content.Parts[0].Text, topic)
	if len(entries) < expectedRows {
		return nil, fmt.Errorf("api returned %d rows, expected %d", len(entries), expectedRows)
	}

	return entries, nil
}

// parseRows turns the pipe-delimited text into entries, skipping
// blank and malformed lines
func (v *VocabAPI) parseRows(text, topic string) []domain.Entry {
	var entries []domain.Entry

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		fields := strings.Split(line, "|")
		if len(fields) < rowFields {
			v.logger.Warn("Skipping malformed vocabulary row",
				zap.String("line", line),
				zap.Int("fields", len(fields)),
			)
			continue
		}
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		if fields[1] == "" || fields[2] == "" {
			v.logger.Warn("Skipping vocabulary row with empty translation", zap.String("line", line))
			continue
		}

		entries = append(entries, domain.Entry{
			Category: topic,
			Translations: domain.Translations{
				Polish:  fields[0],
				English: fields[1],
				Spanish: fields[2],
			},
			Sentences: domain.Translations{
				Polish:  fields[3],
				English: fields[4],
				Spanish: fields[5],
			},
			Definitions: domain.Translations{
				Polish:  fields[6],
				English: fields[7],
				Spanish: fields[8],
			},
		})
	}

	return entries
}
