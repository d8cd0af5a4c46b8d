package handler

import (
	"github.com/promarket/marketplace-api/internal/core/ports"
)

func toCreateProjectInput(req createProjectRequest) ports.CreateProjectInput {
	return ports.CreateProjectInput{
		Title:        req.Title,
		Description:  req.Description,
		ClientID:     req.ClientID,
		Budget:       req.Budget,
		Currency:     req.Currency,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Milestones:   toMilestoneInputs(req.Milestones),
		Deliverables: toDeliverableInputs(req.Deliverables),
	}
}

func toPatchProjectInput(req patchProjectRequest) ports.PatchProjectInput {
	input := ports.PatchProjectInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Budget:      req.Budget,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}
	if req.Milestones != nil {
		input.Milestones = toMilestoneInputs(req.Milestones)
	}
	if req.Deliverables != nil {
		input.Deliverables = toDeliverableInputs(req.Deliverables)
	}
	return input
}

func toMilestoneInputs(in []milestoneRequest) []ports.MilestoneInput {
	if in == nil {
		return nil
	}
	out := make([]ports.MilestoneInput, len(in))
	for i, m := range in {
		out[i] = ports.MilestoneInput{Title: m.Title, TargetDate: m.TargetDate, Completed: m.Completed}
	}
	return out
}

func toDeliverableInputs(in []deliverableRequest) []ports.DeliverableInput {
	if in == nil {
		return nil
	}
	out := make([]ports.DeliverableInput, len(in))
	for i, d := range in {
		out[i] = ports.DeliverableInput{Title: d.Title, Description: d.Description, Delivered: d.Delivered}
	}
	return out
}
