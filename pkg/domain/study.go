package domain

import (
	"time"

	"github.com/google/uuid"
)

// ImagingStudy is one acquisition (a set of images) for a patient.
type ImagingStudy struct {
	ID          uuid.UUID `json:"id"`
	PatientID   uuid.UUID `json:"patient_id"`
	PatientName string    `json:"patient_name,omitempty"`
	Modality    string    `json:"modality"` // e.g. "CT", "MR", "XR"
	BodyPart    string    `json:"body_part,omitempty"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"` // "pending", "reported", "archived"
	ImageCount  int       `json:"image_count"`
	ViewerURL   string    `json:"viewer_url,omitempty"`
	CapturedAt  time.Time `json:"captured_at"`
}

// Valid study modalities, in display order.
var ValidModalities = []string{
	"CT",
	"MR",
	"XR",
	"US",
	"MG",
	"NM",
	"PT",
}

var validModalitySet = func() map[string]bool {
	m := make(map[string]bool, len(ValidModalities))
	for _, mod := range ValidModalities {
		m[mod] = true
	}
	return m
}()

// ValidModality returns true if the given code is a known modality.
func ValidModality(code string) bool {
	return validModalitySet[code]
}
