package domain

import (
	"encoding/json"
	"testing"
)

func TestDoctorUnmarshal_LegacySpellings(t *testing.T) {
	var d Doctor
	if err := json.Unmarshal([]byte(`{"id":3,"name":"Ann","specialization":"ent","availability":"09:00-10:00"}`), &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if d.ID != 3 || d.Specialty != "ent" || len(d.AvailableTimes) != 1 || d.AvailableTimes[0] != "09:00-10:00" {
		t.Fatalf("unexpected doctor %+v", d)
	}
}

func TestDoctorUnmarshal_CanonicalFieldsWin(t *testing.T) {
	var d Doctor
	body := `{"specialty":"cardiology","specialization":"ent","availableTimes":["a"],"availability":["b","c"]}`
	if err := json.Unmarshal([]byte(body), &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if d.Specialty != "cardiology" || len(d.AvailableTimes) != 1 {
		t.Fatalf("unexpected doctor %+v", d)
	}
}

func TestDoctorFilterEmpty(t *testing.T) {
	if !(DoctorFilter{Name: " ", Time: "", Specialty: "\t"}).Empty() {
		t.Fatalf("whitespace filter must be empty")
	}
	if (DoctorFilter{Time: "PM"}).Empty() {
		t.Fatalf("time filter must not be empty")
	}
}
