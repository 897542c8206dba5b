package entities

import "time"

// Team is a group of technicians. MemberIDs is ordered: the first member is the default
// recipient of new request notifications.
type Team struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	MemberIDs   []string  `json:"memberIds"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Lead returns the first member, or "" when the team is empty.
func (t *Team) Lead() string {
	if len(t.MemberIDs) == 0 {
		return ""
	}
	return t.MemberIDs[0]
}

func (t *Team) HasMember(userID string) bool {
	for _, id := range t.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}
