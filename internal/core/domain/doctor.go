package domain

import "encoding/json"

// Doctor is a practitioner record as served by the hospital backend.
type Doctor struct {
	ID             int64    `json:"id,omitempty"`
	Name           string   `json:"name"`
	Specialty      string   `json:"specialty"`
	Email          string   `json:"email"`
	Password       string   `json:"password,omitempty"`
	Phone          string   `json:"phone"`
	AvailableTimes []string `json:"availableTimes"`
}

// UnmarshalJSON also accepts the "specialization" and "availability" spellings
// used by older portal payloads; availability may be a single string.
func (d *Doctor) UnmarshalJSON(b []byte) error {
	type plain Doctor
	var aux struct {
		plain
		Specialization string          `json:"specialization"`
		Availability   json.RawMessage `json:"availability"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*d = Doctor(aux.plain)
	if d.Specialty == "" {
		d.Specialty = aux.Specialization
	}
	if len(d.AvailableTimes) == 0 && len(aux.Availability) > 0 {
		var slots []string
		if err := json.Unmarshal(aux.Availability, &slots); err == nil {
			d.AvailableTimes = slots
		} else {
			var one string
			if err := json.Unmarshal(aux.Availability, &one); err == nil && one != "" {
				d.AvailableTimes = []string{one}
			}
		}
	}
	return nil
}

// DoctorFilter holds the optional doctor search criteria. Blank fields match everything.
type DoctorFilter struct {
	Name      string
	Time      string
	Specialty string
}

// Empty reports whether no criterion is set.
func (f DoctorFilter) Empty() bool {
	return blank(f.Name) && blank(f.Time) && blank(f.Specialty)
}
