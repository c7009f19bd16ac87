package models

// ObjectRef mirrors the extended-JSON {"$oid": "..."} identifier used by the
// catalogue export.
type ObjectRef struct {
	OID string `json:"$oid"`
}

type Medicine struct {
	Ref          ObjectRef `json:"_id"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	Description  string    `json:"description"`
	Manufacturer string    `json:"manufacturer,omitempty"`
	Composition  string    `json:"composition,omitempty"`
	SideEffects  string    `json:"side_effects,omitempty"`
	Price        float64   `json:"price,omitempty"`
	Image        string    `json:"image,omitempty"`
}

func (m *Medicine) ID() string { return m.Ref.OID }

type MedicinePage struct {
	Data       []Medicine `json:"data"`
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
	TotalItems int        `json:"totalItems"`
	TotalPages int        `json:"totalPages"`
}

// MedicineDetails merges catalogue data with the public drug label.
type MedicineDetails struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Indications *string `json:"indications"`
	Image       *string `json:"image"`
}
