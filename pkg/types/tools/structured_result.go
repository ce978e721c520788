package tools

import (
	"encoding/json"
	"reflect"
	"time"

	"github.com/pkg/errors"
)

// StructuredToolResult is a tool outcome with typed metadata, used by the
// CLI renderers and JSON output.
type StructuredToolResult struct {
	ToolName  string       `json:"toolName"`
	Success   bool         `json:"success"`
	Error     string       `json:"error,omitempty"`
	Metadata  ToolMetadata `json:"metadata,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

// NewStructuredResult builds a result stamped with the current time.
// A non-empty errMsg marks the result as failed.
func NewStructuredResult(toolName, errMsg string, metadata ToolMetadata) StructuredToolResult {
	return StructuredToolResult{
		ToolName:  toolName,
		Success:   errMsg == "",
		Error:     errMsg,
		Metadata:  metadata,
		Timestamp: time.Now(),
	}
}

type rawStructuredToolResult struct {
	ToolName     string          `json:"toolName"`
	Success      bool            `json:"success"`
	Error        string          `json:"error,omitempty"`
	MetadataType string          `json:"metadataType,omitempty"`
	Metadata     json.RawMessage `json:"metadata,omitempty"`
	Timestamp    time.Time       `json:"timestamp"`
}

// MarshalJSON records the metadata type next to the metadata so it can be
// decoded back into the right struct.
func (s StructuredToolResult) MarshalJSON() ([]byte, error) {
	raw := rawStructuredToolResult{
		ToolName:  s.ToolName,
		Success:   s.Success,
		Error:     s.Error,
		Timestamp: s.Timestamp,
	}

	if s.Metadata != nil {
		raw.MetadataType = s.Metadata.ToolType()
		b, err := json.Marshal(s.Metadata)
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal metadata")
		}
		raw.Metadata = b
	}

	return json.Marshal(raw)
}

var metadataTypeRegistry = map[string]reflect.Type{
	ListSkillsToolName:        reflect.TypeOf(ListSkillsMetadata{}),
	ActivateSkillToolName:     reflect.TypeOf(ActivateSkillMetadata{}),
	ReadSkillResourceToolName: reflect.TypeOf(ReadSkillResourceMetadata{}),
}

// UnmarshalJSON decodes metadata of a known type. Unknown types are left
// nil.
func (s *StructuredToolResult) UnmarshalJSON(data []byte) error {
	var raw rawStructuredToolResult
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	s.ToolName = raw.ToolName
	s.Success = raw.Success
	s.Error = raw.Error
	s.Timestamp = raw.Timestamp

	if raw.MetadataType == "" || len(raw.Metadata) == 0 {
		return nil
	}
	metadataType, ok := metadataTypeRegistry[raw.MetadataType]
	if !ok {
		return nil
	}

	ptr := reflect.New(metadataType)
	if err := json.Unmarshal(raw.Metadata, ptr.Interface()); err != nil {
		return errors.Wrapf(err, "failed to unmarshal metadata of type %s", raw.MetadataType)
	}
	s.Metadata = ptr.Elem().Interface().(ToolMetadata)
	return nil
}

// ToolMetadata is a marker interface for tool-specific metadata
type ToolMetadata interface {
	ToolType() string
}

// SkillSummary is the metadata-level view of one skill.
type SkillSummary struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type ListSkillsMetadata struct {
	Skills []SkillSummary `json:"skills"`
}

func (m ListSkillsMetadata) ToolType() string { return ListSkillsToolName }

type ActivateSkillMetadata struct {
	SkillName    string              `json:"skillName"`
	Directory    string              `json:"directory"`
	Instructions string              `json:"instructions"`
	Resources    map[string][]string `json:"resources,omitempty"`
}

func (m ActivateSkillMetadata) ToolType() string { return ActivateSkillToolName }

type ReadSkillResourceMetadata struct {
	SkillName    string `json:"skillName"`
	ResourceType string `json:"resourceType"`
	FilePath     string `json:"filePath"`
	Content      string `json:"content"`
	Size         int    `json:"size"`
}

func (m ReadSkillResourceMetadata) ToolType() string { return ReadSkillResourceToolName }
