package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/types"
	"gearguard/pkg/utils"
)

func correctivePayload(subject string) dto.CreateRequestDTO {
	return dto.CreateRequestDTO{
		Subject:           subject,
		Type:              string(entities.RequestCorrective),
		EquipmentID:       "eq-1",
		RequestedByUserID: "user-1",
	}
}

func TestCreateRequest_FillsTeamFromEquipmentAndNotifiesLead(t *testing.T) {
	f := newLifecycleFixture(t, StagePolicy{Strict: true})

	r, err := f.svc.CreateRequest(context.Background(), correctivePayload("  Spindle noise "), CreateRequestOptions{})
	require.NoError(t, err)

	assert.Equal(t, "Spindle noise", r.Subject)
	assert.Equal(t, "team-1", r.TeamID)
	assert.Equal(t, entities.StageNew, r.Stage)
	assert.Equal(t, entities.PriorityMedium, r.Priority)
	assert.Equal(t, fixedNow, r.CreatedAt)
	assert.False(t, r.IsOverdue)

	stored, err := f.requests.FindByID(context.Background(), r.ID)
	require.NoError(t, err)
	assert.Equal(t, "team-1", stored.TeamID)

	require.Len(t, f.sink.sent, 1)
	n := f.sink.sent[0]
	assert.Equal(t, "tech-1", n.UserID)
	assert.Equal(t, entities.NotificationNewRequest, n.Type)
	assert.Equal(t, "New Maintenance Request", n.Title)
	assert.Equal(t, "New request: Spindle noise", n.Message)
	assert.Equal(t, entities.RequestRef{ID: r.ID}, n.Related)
}

func TestCreateRequest_ExplicitTeamWins(t *testing.T) {
	f := newLifecycleFixture(t, StagePolicy{Strict: true})
	f.teams.items["team-2"] = &entities.Team{ID: "team-2", MemberIDs: []string{"tech-2"}}

	payload := correctivePayload("Leak")
	payload.TeamID = "team-2"
	r, err := f.svc.CreateRequest(context.Background(), payload, CreateRequestOptions{})
	require.NoError(t, err)

	assert.Equal(t, "team-2", r.TeamID)
	require.Len(t, f.sink.sent, 1)
	assert.Equal(t, "tech-2", f.sink.sent[0].UserID)
}

func TestCreateRequest_MissingEquipmentLeavesTeamEmpty(t *testing.T) {
	f := newLifecycleFixture(t, StagePolicy{Strict: true})

	payload := correctivePayload("Ghost machine")
	payload.EquipmentID = "eq-404"
	r, err := f.svc.CreateRequest(context.Background(), payload, CreateRequestOptions{})
	require.NoError(t, err)

	assert.Empty(t, r.TeamID)
	assert.Empty(t, f.sink.sent)
}

func TestCreateRequest_Validation(t *testing.T) {
	tests := []struct {
		name  string
		patch func(p *dto.CreateRequestDTO)
		field string
	}{
		{"blank subject", func(p *dto.CreateRequestDTO) { p.Subject = "   " }, "subject"},
		{"unknown type", func(p *dto.CreateRequestDTO) { p.Type = "Emergency" }, "type"},
		{"preventive without date", func(p *dto.CreateRequestDTO) { p.Type = string(entities.RequestPreventive) }, "scheduledDate"},
		{"bad date", func(p *dto.CreateRequestDTO) { p.ScheduledDate = utils.ToPtr("next tuesday") }, "scheduledDate"},
		{"unknown priority", func(p *dto.CreateRequestDTO) { p.Priority = "Urgent" }, "priority"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newLifecycleFixture(t, StagePolicy{Strict: true})
			payload := correctivePayload("Check belts")
			tt.patch(&payload)

			_, err := f.svc.CreateRequest(context.Background(), payload, CreateRequestOptions{})
			require.Error(t, err)
			var ve *apperrors.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
			assert.Empty(t, f.requests.items, "nothing is written on a validation error")
		})
	}
}

func TestCreateRequest_PastScheduledDateIsOverdue(t *testing.T) {
	f := newLifecycleFixture(t, StagePolicy{Strict: true})

	payload := correctivePayload("Oil change")
	payload.Type = string(entities.RequestPreventive)
	payload.ScheduledDate = utils.ToPtr("2025-06-01")
	r, err := f.svc.CreateRequest(context.Background(), payload, CreateRequestOptions{})
	require.NoError(t, err)

	assert.True(t, r.IsOverdue)
}

func TestCreateRequest_NotifyWholeTeam(t *testing.T) {
	f := newLifecycleFixture(t, StagePolicy{Strict: true})

	payload := correctivePayload("Quarterly inspection")
	payload.Type = string(entities.RequestPreventive)
	payload.ScheduledDate = utils.ToPtr("2025-07-01")
	_, err := f.svc.CreateRequest(context.Background(), payload, CreateRequestOptions{NotifyWholeTeam: true})
	require.NoError(t, err)

	require.Len(t, f.sink.sent, 2)
	for i, member := range []string{"tech-1", "tech-2"} {
		assert.Equal(t, member, f.sink.sent[i].UserID)
		assert.Equal(t, "New Scheduled Maintenance", f.sink.sent[i].Title)
		assert.Equal(t, "Scheduled maintenance: Quarterly inspection on 2025-07-01", f.sink.sent[i].Message)
	}
}

func TestCreateRequest_SinkFailureDoesNotFailCreate(t *testing.T) {
	f := newLifecycleFixture(t, StagePolicy{Strict: true})
	f.sink.fail = true

	r, err := f.svc.CreateRequest(context.Background(), correctivePayload("Loose bolt"), CreateRequestOptions{})
	require.NoError(t, err)
	assert.Contains(t, f.requests.items, r.ID)
}

func seedRequest(f *lifecycleFixture, r entities.MaintenanceRequest) {
	if r.Type == "" {
		r.Type = entities.RequestCorrective
	}
	if r.Stage == "" {
		r.Stage = entities.StageNew
	}
	if r.Priority == "" {
		r.Priority = entities.PriorityMedium
	}
	f.requests.items[r.ID] = &r
}

func TestAssignTechnician_NotifiesNewAndPreviousAssignee(t *testing.T) {
	f := newLifecycleFixture(t, StagePolicy{Strict: true})
	seedRequest(f, entities.MaintenanceRequest{
		ID: "req-1", Subject: "Hydraulic leak", EquipmentID: "eq-1", RequestedByUserID: "user-1",
		AssignedToUserID: null.StringFrom("tech-1"),
	})

	r, err := f.svc.AssignTechnician(context.Background(), "req-1", "tech-2")
	require.NoError(t, err)
	assert.Equal(t, null.StringFrom("tech-2"), r.AssignedToUserID)

	previous := f.sink.to("tech-1")
	require.Len(t, previous, 1)
	assert.Equal(t, entities.NotificationTaskReassigned, previous[0].Type)
	assert.Equal(t, `Task "Hydraulic leak" has been reassigned to Tina Tech`, previous[0].Message)

	current := f.sink.to("tech-2")
	require.Len(t, current, 1)
	assert.Equal(t, entities.NotificationRequestAssigned, current[0].Type)
	assert.Equal(t, "You have been assigned to: Hydraulic leak", current[0].Message)
}

func TestAssignTechnician_SameAssigneeOnlyConfirms(t *testing.T) {
	f := newLifecycleFixture(t, StagePolicy{Strict: true})
	seedRequest(f, entities.MaintenanceRequest{
		ID: "req-1", Subject: "Hydraulic leak", AssignedToUserID: null.StringFrom("tech-1"),
	})

	_, err := f.svc.AssignTechnician(context.Background(), "req-1", "tech-1")
	require.NoError(t, err)

	require.Len(t, f.sink.sent, 1)
	assert.Equal(t, entities.NotificationRequestAssigned, f.sink.sent[0].Type)
}

func TestAssignTechnician_Unassign(t *testing.T) {
	f := newLifecycleFixture(t, StagePolicy{Strict: true})
	seedRequest(f, entities.MaintenanceRequest{
		ID: "req-1", Subject: "Hydraulic leak", AssignedToUserID: null.StringFrom("tech-1"),
	})

	r, err := f.svc.AssignTechnician(context.Background(), "req-1", "")
	require.NoError(t, err)
	assert.False(t, r.AssignedToUserID.Valid)

	require.Len(t, f.sink.sent, 1)
	assert.Equal(t, "tech-1", f.sink.sent[0].UserID)
	assert.Contains(t, f.sink.sent[0].Message, "another technician")
}

func TestAssignTechnician_UnknownUser(t *testing.T) {
	f := newLifecycleFixture(t, StagePolicy{Strict: true})
	seedRequest(f, entities.MaintenanceRequest{ID: "req-1", Subject: "Hydraulic leak"})

	_, err := f.svc.AssignTechnician(context.Background(), "req-1", "nobody")
	assert.True(t, apperrors.IsNotFound(err))
	assert.Zero(t, f.requests.updates)
}

func TestTransitionStage_InProgressStampsAcceptedAndNotifiesRequester(t *testing.T) {
	f := newLifecycleFixture(t, StagePolicy{Strict: true})
	seedRequest(f, entities.MaintenanceRequest{ID: "req-1", Subject: "Jammed feeder", RequestedByUserID: "user-1"})

	r, err := f.svc.TransitionStage(context.Background(), "req-1", entities.StageInProgress)
	require.NoError(t, err)

	assert.Equal(t, entities.StageInProgress, r.Stage)
	assert.Equal(t, null.TimeFrom(fixedNow), r.AcceptedAt)
	require.Len(t, f.sink.sent, 1)
	assert.Equal(t, "user-1", f.sink.sent[0].UserID)
	assert.Equal(t, "Request In Progress", f.sink.sent[0].Title)
	assert.Equal(t, `Your request "Jammed feeder" is now in progress`, f.sink.sent[0].Message)
}

func TestTransitionStage_RepairedNotifiesRequesterAndManagers(t *testing.T) {
	f := newLifecycleFixture(t, StagePolicy{Strict: true})
	seedRequest(f, entities.MaintenanceRequest{
		ID: "req-1", Subject: "Jammed feeder", RequestedByUserID: "user-1",
		AssignedToUserID: null.StringFrom("tech-1"), Stage: entities.StageInProgress,
	})

	r, err := f.svc.TransitionStage(context.Background(), "req-1", entities.StageRepaired)
	require.NoError(t, err)
	assert.Equal(t, null.TimeFrom(fixedNow), r.CompletedDate)

	requester := f.sink.to("user-1")
	require.Len(t, requester, 1)
	assert.Equal(t, entities.NotificationRequestCompleted, requester[0].Type)
	assert.Equal(t, `Your request "Jammed feeder" has been completed`, requester[0].Message)

	for _, id := range []string{"admin-1", "mgr-1"} {
		got := f.sink.to(id)
		require.Len(t, got, 1, id)
		assert.Equal(t, `Request "Jammed feeder" has been completed by Tom Tech`, got[0].Message)
	}
	assert.Empty(t, f.sink.to("tech-1"))
}

func TestTransitionStage_RepairedKeepsExistingCompletedDate(t *testing.T) {
	f := newLifecycleFixture(t, StagePolicy{Strict: true})
	done := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	seedRequest(f, entities.MaintenanceRequest{
		ID: "req-1", Subject: "Belt", Stage: entities.StageInProgress, CompletedDate: null.TimeFrom(done),
	})

	r, err := f.svc.TransitionStage(context.Background(), "req-1", entities.StageRepaired)
	require.NoError(t, err)
	assert.Equal(t, done, r.CompletedDate.Time)
}

func TestTransitionStage_SameStageIsNoop(t *testing.T) {
	f := newLifecycleFixture(t, StagePolicy{Strict: true})
	seedRequest(f, entities.MaintenanceRequest{ID: "req-1", Subject: "Belt", Stage: entities.StageInProgress})

	_, err := f.svc.TransitionStage(context.Background(), "req-1", entities.StageInProgress)
	require.NoError(t, err)
	assert.Zero(t, f.requests.updates)
	assert.Empty(t, f.sink.sent)
}

func TestTransitionStage_StrictPolicyRejectsBackwardMove(t *testing.T) {
	f := newLifecycleFixture(t, StagePolicy{Strict: true})
	seedRequest(f, entities.MaintenanceRequest{ID: "req-1", Subject: "Belt", Stage: entities.StageRepaired})

	_, err := f.svc.TransitionStage(context.Background(), "req-1", entities.StageNew)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, entities.StageRepaired, f.requests.items["req-1"].Stage)
}

func TestTransitionStage_LenientPolicyAllowsReopen(t *testing.T) {
	f := newLifecycleFixture(t, StagePolicy{})
	seedRequest(f, entities.MaintenanceRequest{
		ID: "req-1", Subject: "Belt", Stage: entities.StageRepaired,
		RequestedByUserID: "user-1", AssignedToUserID: null.StringFrom("tech-2"),
	})

	r, err := f.svc.TransitionStage(context.Background(), "req-1", entities.StageNew)
	require.NoError(t, err)
	assert.Equal(t, entities.StageNew, r.Stage)

	require.Len(t, f.sink.sent, 1)
	assert.Equal(t, "tech-2", f.sink.sent[0].UserID)
	assert.Equal(t, "Request Status Updated", f.sink.sent[0].Title)
	assert.Equal(t, `Request "Belt" status changed to New`, f.sink.sent[0].Message)
}

func TestTransitionStage_UnknownStage(t *testing.T) {
	f := newLifecycleFixture(t, StagePolicy{Strict: true})
	seedRequest(f, entities.MaintenanceRequest{ID: "req-1", Subject: "Belt"})

	_, err := f.svc.TransitionStage(context.Background(), "req-1", "Done")
	assert.True(t, apperrors.IsValidation(err))
}

func TestTransitionStage_ScrapCascade(t *testing.T) {
	f := newLifecycleFixture(t, StagePolicy{Strict: true})
	seedRequest(f, entities.MaintenanceRequest{
		ID: "req-1", Subject: "Cracked frame", EquipmentID: "eq-1", RequestedByUserID: "user-1",
		Stage: entities.StageInProgress,
	})
	seedRequest(f, entities.MaintenanceRequest{ID: "req-2", Subject: "Oil change", EquipmentID: "eq-1", RequestedByUserID: "user-1"})
	seedRequest(f, entities.MaintenanceRequest{ID: "req-3", Subject: "Old fix", EquipmentID: "eq-1", Stage: entities.StageRepaired})
	f.equipment.items["eq-2"] = &entities.Equipment{ID: "eq-2", Name: "Lathe", Status: entities.EquipmentActive}
	seedRequest(f, entities.MaintenanceRequest{ID: "req-4", Subject: "Other machine", EquipmentID: "eq-2"})

	r, err := f.svc.TransitionStage(context.Background(), "req-1", entities.StageScrap)
	require.NoError(t, err)
	assert.Equal(t, entities.StageScrap, r.Stage)

	eq := f.equipment.items["eq-1"]
	assert.Equal(t, entities.EquipmentScrapped, eq.Status)
	assert.Equal(t, null.TimeFrom(fixedNow), eq.ScrapDate)

	assert.Equal(t, entities.StageScrap, f.requests.items["req-2"].Stage)
	assert.Equal(t, entities.StageRepaired, f.requests.items["req-3"].Stage, "terminal siblings stay as they are")
	assert.Equal(t, entities.StageNew, f.requests.items["req-4"].Stage)
	assert.Equal(t, entities.EquipmentActive, f.equipment.items["eq-2"].Status)

	require.Len(t, f.sink.sent, 1, "only the scrapped request reports its change")
	assert.Equal(t, entities.RequestRef{ID: "req-1"}, f.sink.sent[0].Related)
}

func TestTransitionStage_ScrapWithMissingEquipment(t *testing.T) {
	f := newLifecycleFixture(t, StagePolicy{Strict: true})
	seedRequest(f, entities.MaintenanceRequest{ID: "req-1", Subject: "Orphan", EquipmentID: "eq-gone", RequestedByUserID: "user-1"})

	r, err := f.svc.TransitionStage(context.Background(), "req-1", entities.StageScrap)
	require.NoError(t, err)
	assert.Equal(t, entities.StageScrap, r.Stage)
}

func TestTransitionStage_ScrapCascadeStopsOnStoreFailure(t *testing.T) {
	f := newLifecycleFixture(t, StagePolicy{Strict: true})
	seedRequest(f, entities.MaintenanceRequest{ID: "req-1", Subject: "Cracked frame", EquipmentID: "eq-1"})
	seedRequest(f, entities.MaintenanceRequest{ID: "req-2", Subject: "Oil change", EquipmentID: "eq-1"})
	f.requests.failOn = "req-2"

	_, err := f.svc.TransitionStage(context.Background(), "req-1", entities.StageScrap)
	require.Error(t, err)
	assert.True(t, apperrors.IsStore(err))

	// writes made before the failure stay in place
	assert.Equal(t, entities.StageScrap, f.requests.items["req-1"].Stage)
	assert.Equal(t, entities.EquipmentScrapped, f.equipment.items["eq-1"].Status)
}

func TestUpdateRequest_StageChangeRunsSideEffects(t *testing.T) {
	f := newLifecycleFixture(t, StagePolicy{Strict: true})
	seedRequest(f, entities.MaintenanceRequest{ID: "req-1", Subject: "Belt", RequestedByUserID: "user-1"})

	r, err := f.svc.UpdateRequest(context.Background(), "req-1", dto.UpdateRequestDTO{
		Stage: utils.ToPtr(string(entities.StageRepaired)),
		Notes: utils.ToPtr("replaced belt"),
	})
	require.NoError(t, err)

	assert.Equal(t, "replaced belt", r.Notes)
	assert.True(t, r.CompletedDate.Valid)
	assert.NotEmpty(t, f.sink.to("user-1"))
}

func TestUpdateRequest_PatchKeepsUntouchedFields(t *testing.T) {
	f := newLifecycleFixture(t, StagePolicy{Strict: true})
	seedRequest(f, entities.MaintenanceRequest{
		ID: "req-1", Subject: "Belt", Description: null.StringFrom("squeaks"),
		WorkCenterID: null.StringFrom("wc-1"), Priority: entities.PriorityHigh,
	})

	r, err := f.svc.UpdateRequest(context.Background(), "req-1", dto.UpdateRequestDTO{
		Subject:      utils.ToPtr("Belt squeak"),
		WorkCenterID: utils.ToPtr(""),
	})
	require.NoError(t, err)

	assert.Equal(t, "Belt squeak", r.Subject)
	assert.Equal(t, null.StringFrom("squeaks"), r.Description)
	assert.False(t, r.WorkCenterID.Valid, "an empty string clears the field")
	assert.Equal(t, entities.PriorityHigh, r.Priority)
	assert.Empty(t, f.sink.sent)
}

func TestUpdateRequest_InvalidPatchWritesNothing(t *testing.T) {
	f := newLifecycleFixture(t, StagePolicy{Strict: true})
	seedRequest(f, entities.MaintenanceRequest{ID: "req-1", Subject: "Belt"})

	_, err := f.svc.UpdateRequest(context.Background(), "req-1", dto.UpdateRequestDTO{
		Notes: utils.ToPtr("x"),
		Type:  utils.ToPtr(string(entities.RequestPreventive)),
	})
	assert.True(t, apperrors.IsValidation(err))
	assert.Zero(t, f.requests.updates)
	assert.Empty(t, f.requests.items["req-1"].Notes)
}

func TestUpdateRequest_NotFound(t *testing.T) {
	f := newLifecycleFixture(t, StagePolicy{Strict: true})
	_, err := f.svc.UpdateRequest(context.Background(), "missing", dto.UpdateRequestDTO{})
	assert.True(t, apperrors.IsNotFound(err))
}

func TestDeleteRequest_RemovesChildren(t *testing.T) {
	f := newLifecycleFixture(t, StagePolicy{Strict: true})
	seedRequest(f, entities.MaintenanceRequest{ID: "req-1", Subject: "Belt"})
	seedRequest(f, entities.MaintenanceRequest{ID: "req-2", Subject: "Other"})
	f.logs.items = []entities.TrackingLog{{ID: "l1", RequestID: "req-1"}, {ID: "l2", RequestID: "req-2"}}
	f.requirements.items = []entities.Requirement{{ID: "q1", RequestID: "req-1"}}

	require.NoError(t, f.svc.DeleteRequest(context.Background(), "req-1"))

	assert.NotContains(t, f.requests.items, "req-1")
	require.Len(t, f.logs.items, 1)
	assert.Equal(t, "l2", f.logs.items[0].ID)
	assert.Empty(t, f.requirements.items)

	assert.True(t, apperrors.IsNotFound(f.svc.DeleteRequest(context.Background(), "req-1")))
}

func TestGetRequest_DerivesOverdue(t *testing.T) {
	f := newLifecycleFixture(t, StagePolicy{Strict: true})
	past := null.TimeFrom(fixedNow.Add(-24 * time.Hour))
	seedRequest(f, entities.MaintenanceRequest{ID: "open", Subject: "a", ScheduledDate: past})
	seedRequest(f, entities.MaintenanceRequest{ID: "done", Subject: "b", ScheduledDate: past, Stage: entities.StageRepaired})

	open, err := f.svc.GetRequest(context.Background(), "open")
	require.NoError(t, err)
	assert.True(t, open.IsOverdue)

	list, total, err := f.svc.ListRequests(context.Background(), types.Filter{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	for _, r := range list {
		assert.Equal(t, r.ID == "open", r.IsOverdue, r.ID)
	}
}

func TestAddTrackingLog_TechnicianNotifiesRequester(t *testing.T) {
	f := newLifecycleFixture(t, StagePolicy{Strict: true})
	seedRequest(f, entities.MaintenanceRequest{ID: "req-1", Subject: "Belt", RequestedByUserID: "user-1"})
	long := strings.Repeat("é", 60)

	entry, err := f.svc.AddTrackingLog(context.Background(), dto.CreateTrackingLogDTO{
		RequestID: "req-1", Description: long, CreatedBy: "tech-1",
	})
	require.NoError(t, err)
	assert.Equal(t, fixedNow, entry.CreatedAt)
	require.Len(t, f.logs.items, 1)

	require.Len(t, f.sink.sent, 1)
	n := f.sink.sent[0]
	assert.Equal(t, "user-1", n.UserID)
	assert.Equal(t, entities.NotificationTrackingUpdated, n.Type)
	assert.Equal(t, "Update on Belt: "+strings.Repeat("é", 50)+"...", n.Message)
}

func TestAddTrackingLog_NonTechnicianIsSilent(t *testing.T) {
	f := newLifecycleFixture(t, StagePolicy{Strict: true})
	seedRequest(f, entities.MaintenanceRequest{ID: "req-1", Subject: "Belt", RequestedByUserID: "user-1"})

	_, err := f.svc.AddTrackingLog(context.Background(), dto.CreateTrackingLogDTO{
		RequestID: "req-1", Description: "checked", CreatedBy: "mgr-1",
	})
	require.NoError(t, err)
	assert.Empty(t, f.sink.sent)
}

func TestAddTrackingLog_UnknownRequest(t *testing.T) {
	f := newLifecycleFixture(t, StagePolicy{Strict: true})

	_, err := f.svc.AddTrackingLog(context.Background(), dto.CreateTrackingLogDTO{
		RequestID: "missing", Description: "checked", CreatedBy: "tech-1",
	})
	assert.True(t, apperrors.IsNotFound(err))
	assert.Empty(t, f.logs.items)
}

func TestSubmitRequirement_NotifiesAdmins(t *testing.T) {
	f := newLifecycleFixture(t, StagePolicy{Strict: true})
	seedRequest(f, entities.MaintenanceRequest{ID: "req-1", Subject: "Belt"})
	price := decimal.RequireFromString("125.50")

	req, err := f.svc.SubmitRequirement(context.Background(), dto.SubmitRequirementDTO{
		RequestID: "req-1", SubmittedBy: "tech-1", Products: []string{" V-belt ", "", "Grease"}, Pricing: &price,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"V-belt", "Grease"}, req.Products)
	assert.Equal(t, entities.RequirementPending, req.Status)
	assert.True(t, req.Pricing.Valid)
	assert.True(t, price.Equal(req.Pricing.Decimal))

	require.Len(t, f.sink.sent, 1)
	assert.Equal(t, "admin-1", f.sink.sent[0].UserID)
	assert.Equal(t, entities.NotificationRequirementSubmitted, f.sink.sent[0].Type)
	assert.Equal(t, "Repair Requirements Submitted", f.sink.sent[0].Title)
}

func TestSubmitRequirement_Validation(t *testing.T) {
	f := newLifecycleFixture(t, StagePolicy{Strict: true})
	seedRequest(f, entities.MaintenanceRequest{ID: "req-1", Subject: "Belt"})
	negative := decimal.NewFromInt(-1)

	_, err := f.svc.SubmitRequirement(context.Background(), dto.SubmitRequirementDTO{
		RequestID: "req-1", SubmittedBy: "tech-1", Products: []string{" "},
	})
	assert.True(t, apperrors.IsValidation(err))

	_, err = f.svc.SubmitRequirement(context.Background(), dto.SubmitRequirementDTO{
		RequestID: "req-1", SubmittedBy: "tech-1", Products: []string{"belt"}, Pricing: &negative,
	})
	assert.True(t, apperrors.IsValidation(err))
	assert.Empty(t, f.requirements.items)
}

func TestReviewRequirement(t *testing.T) {
	f := newLifecycleFixture(t, StagePolicy{Strict: true})
	seedRequest(f, entities.MaintenanceRequest{ID: "req-1", Subject: "Belt"})
	f.requirements.items = []entities.Requirement{
		{ID: "q1", RequestID: "req-1", SubmittedBy: "tech-1", Status: entities.RequirementPending},
	}

	req, err := f.svc.ReviewRequirement(context.Background(), "q1", entities.RequirementApproved)
	require.NoError(t, err)
	assert.Equal(t, entities.RequirementApproved, req.Status)
	assert.Equal(t, null.TimeFrom(fixedNow), req.ApprovedAt)

	require.Len(t, f.sink.sent, 1)
	assert.Equal(t, "tech-1", f.sink.sent[0].UserID)
	assert.Equal(t, "Requirements Approved", f.sink.sent[0].Title)
	assert.Equal(t, `Your requirements for "Belt" were approved`, f.sink.sent[0].Message)

	_, err = f.svc.ReviewRequirement(context.Background(), "q1", entities.RequirementRejected)
	assert.True(t, apperrors.IsValidation(err), "a reviewed requirement cannot be reviewed again")

	_, err = f.svc.ReviewRequirement(context.Background(), "q1", entities.RequirementPending)
	assert.True(t, apperrors.IsValidation(err))
}

func TestCreateRequest_RejectsScrappedEquipment(t *testing.T) {
	f := newLifecycleFixture(t, StagePolicy{Strict: true})
	f.equipment.items["eq-1"].Status = entities.EquipmentScrapped

	payload := correctivePayload("Too late")
	payload.TeamID = "team-1"
	_, err := f.svc.CreateRequest(context.Background(), payload, CreateRequestOptions{})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Empty(t, f.requests.items)
	assert.Empty(t, f.sink.sent)
}

func TestTransitionStage_RepairClearsOverdue(t *testing.T) {
	f := newLifecycleFixture(t, StagePolicy{Strict: true})
	seedRequest(f, entities.MaintenanceRequest{
		ID: "req-1", Subject: "Quarterly lube", Stage: entities.StageInProgress, RequestedByUserID: "user-1",
		ScheduledDate: null.TimeFrom(fixedNow.AddDate(0, 0, -3)),
	})

	before, err := f.svc.GetRequest(context.Background(), "req-1")
	require.NoError(t, err)
	require.True(t, before.IsOverdue)

	repaired, err := f.svc.TransitionStage(context.Background(), "req-1", entities.StageRepaired)
	require.NoError(t, err)
	assert.False(t, repaired.IsOverdue)
	assert.Equal(t, null.TimeFrom(fixedNow), repaired.CompletedDate)

	after, err := f.svc.GetRequest(context.Background(), "req-1")
	require.NoError(t, err)
	assert.False(t, after.IsOverdue)
}
