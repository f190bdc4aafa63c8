package intake

import "regexp"

// trailingLabelRE strips dangling label words left at the end of the working
// text once their field value has been consumed ("Jane Doe - Phone" after
// the number was claimed by the phone extractor).
var trailingLabelRE = regexp.MustCompile(
	`(?i)(?:\b(?:` + roomKeywords + `|phone|cell|tel|mobile|contact)\b[\s.:#-]*)+$`)

const (
	issueNoPhone = "No phone number detected"
	issueNoRoom  = "No room number detected"
	issueNoName  = "No name detected"
)

// ParseLine runs the extraction pipeline over one raw line:
// normalize, extract and strip the phone, extract and strip the room, strip
// trailing label residue, extract the name. ok is false when no name could
// be recovered; the batch layer drops such lines without recording an error.
func (p *Parser) ParseLine(raw string) (Contact, bool) {
	working := NormalizeLine(raw)
	contact := Contact{RawText: raw}

	phones := p.findPhoneCandidates(working)
	if len(phones) > 0 {
		normalized := p.normalizePhone(phones[0])
		contact.PhoneNumber = &normalized
		working = removeOnce(working, phones[0])
	}

	if room, matched, ok := p.extractRoom(working, phones); ok {
		contact.RoomIdentifier = &room
		working = removeOnce(working, matched)
	}

	working = trailingLabelRE.ReplaceAllString(working, "")

	name, ok := p.extractName(working)
	contact.Name = name

	confidence := 0.0
	if contact.Name != "" {
		confidence += p.cfg.NameWeight
	} else {
		contact.Issues = append(contact.Issues, issueNoName)
	}
	if contact.PhoneNumber != nil {
		confidence += p.cfg.PhoneWeight
	} else {
		contact.Issues = append(contact.Issues, issueNoPhone)
	}
	if contact.RoomIdentifier != nil {
		confidence += p.cfg.RoomWeight
	} else {
		contact.Issues = append(contact.Issues, issueNoRoom)
	}
	if confidence > 1.0 {
		confidence = 1.0
	}
	contact.Confidence = confidence

	return contact, ok
}
