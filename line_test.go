package intake

import "testing"

func TestParseLineFullRecord(t *testing.T) {
	p := newTestParser(t)

	contact, ok := p.ParseLine("1. Room 814 - Jane Doe - 0821234567")
	if !ok {
		t.Fatal("expected line to parse")
	}
	if contact.Name != "Jane Doe" {
		t.Errorf("Name = %q, want %q", contact.Name, "Jane Doe")
	}
	if contact.PhoneNumber == nil || *contact.PhoneNumber != "+27821234567" {
		t.Errorf("PhoneNumber = %v, want +27821234567", contact.PhoneNumber)
	}
	if contact.RoomIdentifier == nil || *contact.RoomIdentifier != "814" {
		t.Errorf("RoomIdentifier = %v, want 814", contact.RoomIdentifier)
	}
	if contact.RawText != "1. Room 814 - Jane Doe - 0821234567" {
		t.Errorf("RawText = %q, want the original line", contact.RawText)
	}
	if !almostEqual(contact.Confidence, 1.0) {
		t.Errorf("Confidence = %v, want 1.0", contact.Confidence)
	}
	if len(contact.Issues) != 0 {
		t.Errorf("Issues = %v, want none", contact.Issues)
	}
}

func TestParseLineMissingRoom(t *testing.T) {
	p := newTestParser(t)

	contact, ok := p.ParseLine("John - 082 555 1234")
	if !ok {
		t.Fatal("expected line to parse")
	}
	if contact.Name != "John" {
		t.Errorf("Name = %q, want %q", contact.Name, "John")
	}
	if contact.PhoneNumber == nil || *contact.PhoneNumber != "+27825551234" {
		t.Errorf("PhoneNumber = %v, want +27825551234", contact.PhoneNumber)
	}
	if contact.RoomIdentifier != nil {
		t.Errorf("RoomIdentifier = %q, want absent", *contact.RoomIdentifier)
	}
	if !almostEqual(contact.Confidence, 0.8) {
		t.Errorf("Confidence = %v, want 0.8", contact.Confidence)
	}
	if len(contact.Issues) != 1 || contact.Issues[0] != issueNoRoom {
		t.Errorf("Issues = %v, want [%q]", contact.Issues, issueNoRoom)
	}
}

func TestParseLineMissingPhoneAndRoom(t *testing.T) {
	p := newTestParser(t)

	contact, ok := p.ParseLine("Jane Doe")
	if !ok {
		t.Fatal("expected line to parse")
	}
	if !almostEqual(contact.Confidence, 0.5) {
		t.Errorf("Confidence = %v, want 0.5", contact.Confidence)
	}
	want := []string{issueNoPhone, issueNoRoom}
	if len(contact.Issues) != 2 || contact.Issues[0] != want[0] || contact.Issues[1] != want[1] {
		t.Errorf("Issues = %v, want %v", contact.Issues, want)
	}
}

func TestParseLineNoNameDropped(t *testing.T) {
	p := newTestParser(t)

	contact, ok := p.ParseLine("B12 0735551111")
	if ok {
		t.Fatalf("expected nameless line to be dropped, got %+v", contact)
	}
	// Extraction still ran; the drop is only about the missing name.
	if contact.PhoneNumber == nil || *contact.PhoneNumber != "+27735551111" {
		t.Errorf("PhoneNumber = %v, want +27735551111", contact.PhoneNumber)
	}
	if contact.RoomIdentifier == nil || *contact.RoomIdentifier != "B12" {
		t.Errorf("RoomIdentifier = %v, want B12", contact.RoomIdentifier)
	}
}

// The substring consumed as the phone never resurfaces as the room.
func TestParseLinePhoneRoomExclusivity(t *testing.T) {
	p := newTestParser(t)

	contact, ok := p.ParseLine("Jane 0821234567")
	if !ok {
		t.Fatal("expected line to parse")
	}
	if contact.PhoneNumber == nil {
		t.Fatal("expected a phone number")
	}
	if contact.RoomIdentifier != nil {
		t.Errorf("RoomIdentifier = %q, want absent (phone digits must not become a room)",
			*contact.RoomIdentifier)
	}
}

func TestParseLineTrailingLabelResidue(t *testing.T) {
	p := newTestParser(t)

	contact, ok := p.ParseLine("Jane Doe - Phone 0821234567")
	if !ok {
		t.Fatal("expected line to parse")
	}
	if contact.Name != "Jane Doe" {
		t.Errorf("Name = %q, want %q", contact.Name, "Jane Doe")
	}
	if contact.RoomIdentifier != nil {
		t.Errorf("RoomIdentifier = %q, want absent", *contact.RoomIdentifier)
	}
}

func TestParseLineNameAfterRoomAndPhone(t *testing.T) {
	p := newTestParser(t)

	contact, ok := p.ParseLine("Room 12: Bob 083 222 1111")
	if !ok {
		t.Fatal("expected line to parse")
	}
	if contact.Name != "Bob" {
		t.Errorf("Name = %q, want %q", contact.Name, "Bob")
	}
	if contact.RoomIdentifier == nil || *contact.RoomIdentifier != "12" {
		t.Errorf("RoomIdentifier = %v, want 12", contact.RoomIdentifier)
	}
	if contact.PhoneNumber == nil || *contact.PhoneNumber != "+27832221111" {
		t.Errorf("PhoneNumber = %v, want +27832221111", contact.PhoneNumber)
	}
	if !almostEqual(contact.Confidence, 1.0) {
		t.Errorf("Confidence = %v, want 1.0", contact.Confidence)
	}
}

// Confidence is exactly the weighted sum of recovered fields.
func TestParseLineConfidenceWeights(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NameWeight = 0.6
	cfg.PhoneWeight = 0.25
	cfg.RoomWeight = 0.15

	p, err := NewParser(cfg)
	if err != nil {
		t.Fatalf("NewParser failed: %v", err)
	}

	contact, ok := p.ParseLine("Jane Doe - 0821234567")
	if !ok {
		t.Fatal("expected line to parse")
	}
	if want := cfg.NameWeight + cfg.PhoneWeight; !almostEqual(contact.Confidence, want) {
		t.Errorf("Confidence = %v, want %v", contact.Confidence, want)
	}
}
