package entities

import (
	"encoding/json"
	"fmt"
	"time"
)

type RelatedType string

const (
	RelatedTypeRequest   RelatedType = "request"
	RelatedTypeEquipment RelatedType = "equipment"
	RelatedTypeUser      RelatedType = "user"
)

// Related points a notification at the record it is about. The set of implementations is closed:
// RequestRef, EquipmentRef and UserRef.
type Related interface {
	RelatedType() RelatedType
	RelatedID() string
	// Link is the dashboard route that opens the referenced record.
	Link() string
	sealed()
}

type RequestRef struct{ ID string }

func (r RequestRef) RelatedType() RelatedType { return RelatedTypeRequest }
func (r RequestRef) RelatedID() string        { return r.ID }
func (r RequestRef) Link() string             { return "/requests/" + r.ID }
func (RequestRef) sealed()                    {}

type EquipmentRef struct{ ID string }

func (r EquipmentRef) RelatedType() RelatedType { return RelatedTypeEquipment }
func (r EquipmentRef) RelatedID() string        { return r.ID }
func (r EquipmentRef) Link() string             { return "/equipment/" + r.ID }
func (EquipmentRef) sealed()                    {}

type UserRef struct{ ID string }

func (r UserRef) RelatedType() RelatedType { return RelatedTypeUser }
func (r UserRef) RelatedID() string        { return r.ID }
func (r UserRef) Link() string             { return "/users/" + r.ID }
func (UserRef) sealed()                    {}

// NewRelated rebuilds a reference from its stored columns. An empty kind yields nil.
func NewRelated(kind, id string) (Related, error) {
	switch RelatedType(kind) {
	case "":
		return nil, nil
	case RelatedTypeRequest:
		return RequestRef{ID: id}, nil
	case RelatedTypeEquipment:
		return EquipmentRef{ID: id}, nil
	case RelatedTypeUser:
		return UserRef{ID: id}, nil
	}
	return nil, fmt.Errorf("unknown related type %q", kind)
}

// Notification is an in-app message to one user. Only IsRead changes after creation.
type Notification struct {
	ID        string
	UserID    string
	Type      NotificationType
	Title     string
	Message   string
	Related   Related
	IsRead    bool
	CreatedAt time.Time
}

type notificationJSON struct {
	ID          string           `json:"id"`
	UserID      string           `json:"userId"`
	Type        NotificationType `json:"type"`
	Title       string           `json:"title"`
	Message     string           `json:"message"`
	RelatedID   *string          `json:"relatedId"`
	RelatedType *RelatedType     `json:"relatedType"`
	Link        string           `json:"link,omitempty"`
	IsRead      bool             `json:"isRead"`
	CreatedAt   time.Time        `json:"createdAt"`
}

func (n Notification) MarshalJSON() ([]byte, error) {
	out := notificationJSON{
		ID:        n.ID,
		UserID:    n.UserID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
	if n.Related != nil {
		id, kind := n.Related.RelatedID(), n.Related.RelatedType()
		out.RelatedID, out.RelatedType = &id, &kind
		out.Link = n.Related.Link()
	}
	return json.Marshal(out)
}

func (n *Notification) UnmarshalJSON(data []byte) error {
	var in notificationJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*n = Notification{
		ID:        in.ID,
		UserID:    in.UserID,
		Type:      in.Type,
		Title:     in.Title,
		Message:   in.Message,
		IsRead:    in.IsRead,
		CreatedAt: in.CreatedAt,
	}
	if in.RelatedType != nil {
		id := ""
		if in.RelatedID != nil {
			id = *in.RelatedID
		}
		related, err := NewRelated(string(*in.RelatedType), id)
		if err != nil {
			return err
		}
		n.Related = related
	}
	return nil
}
