package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered account on the image-management service.
type User struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	Address        string    `json:"address,omitempty"`
	DateOfBirth    string    `json:"dateOfBirth,omitempty"`    // YYYY-MM-DD
	RegisteredDate string    `json:"registeredDate,omitempty"` // YYYY-MM-DD
	Role           Role      `json:"role"`
	CreatedAt      time.Time `json:"created_at"`
}

// Patient is the patient-facing card returned to staff views.
type Patient struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	DateOfBirth string    `json:"dateOfBirth,omitempty"`
	StudyCount  int       `json:"study_count"`
	LastVisit   time.Time `json:"last_visit,omitempty"`
}
