package config

import (
	"encoding/json"
	"fmt"
	"net"
	"strconv"
	"time"
)

// Settings is the typed view of the configuration document.
type Settings struct {
	Node       NodeSettings       `json:"node"`
	Meshtastic MeshtasticSettings `json:"meshtastic"`
	Ollama     OllamaSettings     `json:"ollama"`
	RAG        RAGSettings        `json:"rag"`
	Announce   AnnounceSettings   `json:"announce"`
	Logging    LoggingSettings    `json:"logging"`
}

type NodeSettings struct {
	Name         string `json:"name"`
	SerialDevice string `json:"serial_device"`
	TimeZone     string `json:"time_zone"`
}

type MeshtasticSettings struct {
	GroupChannel           string `json:"group_channel"`
	DMAckEnabled           bool   `json:"dm_ack_enabled"`
	DMAckText              string `json:"dm_ack_text"`
	BacklogNoticeThreshold int    `json:"backlog_notice_threshold"`
	BacklogNoticeText      string `json:"backlog_notice_text"`
}

type OllamaSettings struct {
	Host        string  `json:"host"`
	Port        int     `json:"port"`
	Model       string  `json:"model"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
}

// BaseURL is the HTTP endpoint of the model server.
func (o OllamaSettings) BaseURL() string {
	return "http://" + net.JoinHostPort(o.Host, strconv.Itoa(o.Port))
}

type RAGSettings struct {
	DBPath          string `json:"db_path"`
	TopK            int    `json:"top_k"`
	MaxChunkTokens  int    `json:"max_chunk_tokens"`
	FallbackLexical bool   `json:"fallback_lexical"`
}

type AnnounceSettings struct {
	ScheduleFile           string `json:"schedule_file"`
	PreStartOffsets        []int  `json:"pre_start_offsets"`
	PostStartRepeatMinutes int    `json:"post_start_repeat_minutes"`
}

// PreStartDurations returns the announcement offsets as durations (they are stored in minutes).
func (a AnnounceSettings) PreStartDurations() []time.Duration {
	out := make([]time.Duration, len(a.PreStartOffsets))
	for i, m := range a.PreStartOffsets {
		out[i] = time.Duration(m) * time.Minute
	}
	return out
}

type LoggingSettings struct {
	Level string `json:"level"`
	Dir   string `json:"dir"`
}

// DecodeSettings converts an untyped document into Settings.
// Sections or keys it does not know are ignored; a value of the wrong type is an error.
func DecodeSettings(doc map[string]any) (Settings, error) {
	var settings Settings

	data, err := json.Marshal(doc)
	if err != nil {
		return settings, fmt.Errorf("failed to marshal config document: %w", err)
	}
	if err := json.Unmarshal(data, &settings); err != nil {
		return settings, fmt.Errorf("failed to decode settings: %w", err)
	}
	return settings, nil
}
