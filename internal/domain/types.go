package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// MediaType distinguishes movies from episodic content.
type MediaType string

const (
	MediaTypeMovie MediaType = "movie"
	MediaTypeTV    MediaType = "tv_show"
)

// Valid reports whether the media type is a known value.
func (m MediaType) Valid() bool {
	switch m {
	case MediaTypeMovie, MediaTypeTV:
		return true
	}
	return false
}

// Label is the training classification applied to a media item.
type Label string

const (
	LabelWouldWatch    Label = "would_watch"
	LabelWouldNotWatch Label = "would_not_watch"
)

// Valid reports whether the label is a known value.
func (l Label) Valid() bool {
	switch l {
	case LabelWouldWatch, LabelWouldNotWatch:
		return true
	}
	return false
}

// PipelineStatus is a media item's position in the acquisition lifecycle.
type PipelineStatus string

const (
	PipelineIngested          PipelineStatus = "ingested"
	PipelineParsed            PipelineStatus = "parsed"
	PipelineFileAccepted      PipelineStatus = "file_accepted"
	PipelineMetadataCollected PipelineStatus = "metadata_collected"
	PipelineMediaAccepted     PipelineStatus = "media_accepted"
	PipelineDownloading       PipelineStatus = "downloading"
	PipelineDownloaded        PipelineStatus = "downloaded"
	PipelineTransferred       PipelineStatus = "transferred"
	PipelineComplete          PipelineStatus = "complete"
	PipelinePaused            PipelineStatus = "paused"
	PipelineRejected          PipelineStatus = "rejected"
)

// Valid reports whether the pipeline status is a known value.
func (p PipelineStatus) Valid() bool {
	switch p {
	case PipelineIngested, PipelineParsed, PipelineFileAccepted,
		PipelineMetadataCollected, PipelineMediaAccepted, PipelineDownloading,
		PipelineDownloaded, PipelineTransferred, PipelineComplete,
		PipelinePaused, PipelineRejected:
		return true
	}
	return false
}

// RejectionStatus classifies whether a media item was filtered in or out of
// consideration, independent of pipeline progress.
type RejectionStatus string

const (
	RejectionUnfiltered RejectionStatus = "unfiltered"
	RejectionAccepted   RejectionStatus = "accepted"
	RejectionRejected   RejectionStatus = "rejected"
	RejectionOverride   RejectionStatus = "override"
)

// Valid reports whether the rejection status is a known value.
func (r RejectionStatus) Valid() bool {
	switch r {
	case RejectionUnfiltered, RejectionAccepted, RejectionRejected, RejectionOverride:
		return true
	}
	return false
}

// CMValue is a confusion-matrix cell for a stored model prediction.
type CMValue string

const (
	CMTrueNegative  CMValue = "tn"
	CMTruePositive  CMValue = "tp"
	CMFalseNegative CMValue = "fn"
	CMFalsePositive CMValue = "fp"
)

// Valid reports whether the confusion-matrix value is a known value.
func (c CMValue) Valid() bool {
	switch c {
	case CMTrueNegative, CMTruePositive, CMFalseNegative, CMFalsePositive:
		return true
	}
	return false
}

// StringArray stores string slices as JSON text columns.
type StringArray []string

// Value implements the driver.Valuer interface for database serialization.
func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface for database deserialization.
func (a *StringArray) Scan(value interface{}) error {
	if value == nil {
		*a = StringArray{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		str, ok := value.(string)
		if !ok {
			return errors.New("failed to scan StringArray")
		}
		bytes = []byte(str)
	}
	return json.Unmarshal(bytes, a)
}
