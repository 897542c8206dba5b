package entities

// RequestStage is the lifecycle state of a maintenance request.
type RequestStage string

const (
	StageNew        RequestStage = "New"
	StageInProgress RequestStage = "In Progress"
	StageRepaired   RequestStage = "Repaired"
	StageScrap      RequestStage = "Scrap"
)

// AllStages lists the stages in kanban column order.
var AllStages = []RequestStage{StageNew, StageInProgress, StageRepaired, StageScrap}

func (s RequestStage) IsValid() bool {
	switch s {
	case StageNew, StageInProgress, StageRepaired, StageScrap:
		return true
	}
	return false
}

// IsTerminal is true for Repaired and Scrap.
func (s RequestStage) IsTerminal() bool {
	return s == StageRepaired || s == StageScrap
}

type RequestType string

const (
	RequestCorrective RequestType = "Corrective"
	RequestPreventive RequestType = "Preventive"
)

func (t RequestType) IsValid() bool {
	return t == RequestCorrective || t == RequestPreventive
}

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

func (p Priority) IsValid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

type EquipmentStatus string

const (
	EquipmentActive   EquipmentStatus = "Active"
	EquipmentInactive EquipmentStatus = "Inactive"
	EquipmentScrapped EquipmentStatus = "Scrapped"
)

func (s EquipmentStatus) IsValid() bool {
	return s == EquipmentActive || s == EquipmentInactive || s == EquipmentScrapped
}

type UserRole string

const (
	RoleAdmin      UserRole = "admin"
	RoleManager    UserRole = "manager"
	RoleTechnician UserRole = "technician"
	RoleUser       UserRole = "user"
)

func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleTechnician, RoleUser:
		return true
	}
	return false
}

// CanManage is true for roles allowed to assign work and review requirements.
func (r UserRole) CanManage() bool {
	return r == RoleAdmin || r == RoleManager
}

type RequirementStatus string

const (
	RequirementPending  RequirementStatus = "pending"
	RequirementApproved RequirementStatus = "approved"
	RequirementRejected RequirementStatus = "rejected"
)

func (s RequirementStatus) IsValid() bool {
	return s == RequirementPending || s == RequirementApproved || s == RequirementRejected
}

type NotificationType string

const (
	NotificationNewRequest           NotificationType = "new_request"
	NotificationRequestAssigned      NotificationType = "request_assigned"
	NotificationRequestUpdated       NotificationType = "request_updated"
	NotificationRequestCompleted     NotificationType = "request_completed"
	NotificationTaskReassigned       NotificationType = "task_reassigned"
	NotificationEquipmentUpdated     NotificationType = "equipment_updated"
	NotificationNewUserRegistered    NotificationType = "new_user_registered"
	NotificationSystemAlert          NotificationType = "system_alert"
	NotificationRequirementSubmitted NotificationType = "requirement_submitted"
	NotificationTrackingUpdated      NotificationType = "tracking_updated"
)

func (t NotificationType) IsValid() bool {
	switch t {
	case NotificationNewRequest, NotificationRequestAssigned, NotificationRequestUpdated,
		NotificationRequestCompleted, NotificationTaskReassigned, NotificationEquipmentUpdated,
		NotificationNewUserRegistered, NotificationSystemAlert, NotificationRequirementSubmitted,
		NotificationTrackingUpdated:
		return true
	}
	return false
}
