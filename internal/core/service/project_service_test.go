package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/promarket/marketplace-api/internal/core/domain"
	"github.com/promarket/marketplace-api/internal/core/ports"
)

func projectFixtures(t *testing.T) (*stubProjectRepo, *stubUserRepo, *ProjectService, *domain.User, *domain.User) {
	t.Helper()
	users := newStubUserRepo()
	pro := users.add(&domain.User{Name: "Pro", Email: "pro@example.com", Role: domain.RolePro})
	client := users.add(&domain.User{Name: "Client", Email: "client@example.com", Role: domain.RoleClient})
	repo := newStubProjectRepo()
	svc := NewProjectService(repo, users, zerolog.Nop())
	return repo, users, svc, pro, client
}

func TestProjectService_Create_Success(t *testing.T) {
	_, _, svc, pro, client := projectFixtures(t)

	project, err := svc.Create(context.Background(), ports.Actor{UserID: pro.ID, Role: domain.RolePro}, ports.CreateProjectInput{
		Title:     "SEO Campaign",
		ClientID:  client.ID,
		Budget:    5000,
		Currency:  "USD",
		StartDate: time.Now(),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if project.Status != domain.ProjectPlanning {
		t.Fatalf("new project should start in planning, got %s", project.Status)
	}
	if project.ProID != pro.ID || project.ClientID != client.ID {
		t.Fatalf("unexpected parties: pro=%s client=%s", project.ProID, project.ClientID)
	}
}

func TestProjectService_Create_OnlyPros(t *testing.T) {
	_, _, svc, _, client := projectFixtures(t)

	_, err := svc.Create(context.Background(), ports.Actor{UserID: client.ID, Role: domain.RoleClient}, ports.CreateProjectInput{
		Title: "X", ClientID: client.ID,
	})
	if err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestProjectService_Create_ClientMustHoldClientRole(t *testing.T) {
	_, users, svc, pro, _ := projectFixtures(t)
	otherPro := users.add(&domain.User{Name: "Pro2", Email: "pro2@example.com", Role: domain.RolePro})

	_, err := svc.Create(context.Background(), ports.Actor{UserID: pro.ID, Role: domain.RolePro}, ports.CreateProjectInput{
		Title: "X", ClientID: otherPro.ID,
	})
	if err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestProjectService_Get_OwnershipEnforced(t *testing.T) {
	repo, users, svc, pro, client := projectFixtures(t)
	stranger := users.add(&domain.User{Name: "Other", Email: "other@example.com", Role: domain.RolePro})
	project := repo.add(&domain.Project{Title: "P", Status: domain.ProjectActive, ProID: pro.ID, ClientID: client.ID})

	if _, err := svc.Get(context.Background(), ports.Actor{UserID: stranger.ID, Role: domain.RolePro}, project.ID); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden for stranger, got %v", err)
	}
	if _, err := svc.Get(context.Background(), ports.Actor{UserID: client.ID, Role: domain.RoleClient}, project.ID); err != nil {
		t.Fatalf("client party should read the project: %v", err)
	}
	if _, err := svc.Get(context.Background(), ports.Actor{UserID: "any", Role: domain.RoleAdmin}, project.ID); err != nil {
		t.Fatalf("admin should read any project: %v", err)
	}
}

func TestProjectService_List_ScopedByRole(t *testing.T) {
	repo, _, svc, pro, client := projectFixtures(t)
	repo.add(&domain.Project{Title: "Mine", Status: domain.ProjectActive, ProID: pro.ID, ClientID: client.ID})
	repo.add(&domain.Project{Title: "Other", Status: domain.ProjectActive, ProID: "someone", ClientID: "else"})

	result, err := svc.List(context.Background(), ports.Actor{UserID: pro.ID, Role: domain.RolePro}, ports.ListProjectsInput{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(result.Items) != 1 || result.Items[0].Title != "Mine" {
		t.Fatalf("pro listing should be scoped, got %+v", result.Items)
	}

	result, err = svc.List(context.Background(), ports.Actor{UserID: "adm", Role: domain.RoleAdmin}, ports.ListProjectsInput{})
	if err != nil {
		t.Fatalf("admin list failed: %v", err)
	}
	if len(result.Items) != 2 {
		t.Fatalf("admin listing should be unscoped, got %d items", len(result.Items))
	}
}

func TestProjectService_List_UnknownStatusRejected(t *testing.T) {
	_, _, svc, pro, _ := projectFixtures(t)

	_, err := svc.List(context.Background(), ports.Actor{UserID: pro.ID, Role: domain.RolePro}, ports.ListProjectsInput{Status: "archived"})
	if err != domain.ErrUnknownProjectStatus {
		t.Fatalf("expected ErrUnknownProjectStatus, got %v", err)
	}
}

func TestProjectService_Patch_StatusTransitions(t *testing.T) {
	repo, _, svc, pro, client := projectFixtures(t)
	actor := ports.Actor{UserID: pro.ID, Role: domain.RolePro}

	cases := []struct {
		from    domain.ProjectStatus
		to      string
		wantErr error
	}{
		{domain.ProjectPlanning, "active", nil},
		{domain.ProjectActive, "completed", nil},
		{domain.ProjectOnHold, "active", nil},
		{domain.ProjectActive, "active", nil}, // no-op is allowed
		{domain.ProjectCompleted, "active", domain.ErrInvalidProjectTransition},
		{domain.ProjectCancelled, "planning", domain.ErrInvalidProjectTransition},
		{domain.ProjectPlanning, "completed", domain.ErrInvalidProjectTransition},
		{domain.ProjectActive, "archived", domain.ErrUnknownProjectStatus},
	}
	for _, tc := range cases {
		project := repo.add(&domain.Project{Title: "P", Status: tc.from, ProID: pro.ID, ClientID: client.ID})
		_, err := svc.Patch(context.Background(), actor, project.ID, ports.PatchProjectInput{Status: &tc.to})
		if err != tc.wantErr {
			t.Fatalf("%s -> %s: expected %v, got %v", tc.from, tc.to, tc.wantErr, err)
		}
	}
}

func TestProjectService_Patch_PartialUpdate(t *testing.T) {
	repo, _, svc, pro, client := projectFixtures(t)
	project := repo.add(&domain.Project{Title: "Old", Description: "keep me", Status: domain.ProjectPlanning, ProID: pro.ID, ClientID: client.ID})

	title := "New Title"
	updated, err := svc.Patch(context.Background(), ports.Actor{UserID: client.ID, Role: domain.RoleClient}, project.ID, ports.PatchProjectInput{Title: &title})
	if err != nil {
		t.Fatalf("patch failed: %v", err)
	}
	if updated.Title != "New Title" {
		t.Fatalf("title not updated: %q", updated.Title)
	}
	if updated.Description != "keep me" {
		t.Fatalf("description should be unchanged, got %q", updated.Description)
	}
}

func TestProjectService_Patch_MilestonesReplacedWholesale(t *testing.T) {
	repo, _, svc, pro, client := projectFixtures(t)
	project := repo.add(&domain.Project{
		Title: "P", Status: domain.ProjectActive, ProID: pro.ID, ClientID: client.ID,
		Milestones: []domain.Milestone{{Title: "old one"}, {Title: "old two"}},
	})

	updated, err := svc.Patch(context.Background(), ports.Actor{UserID: pro.ID, Role: domain.RolePro}, project.ID, ports.PatchProjectInput{
		Milestones: []ports.MilestoneInput{{Title: "only new"}},
	})
	if err != nil {
		t.Fatalf("patch failed: %v", err)
	}
	if len(updated.Milestones) != 1 || updated.Milestones[0].Title != "only new" {
		t.Fatalf("milestones should be replaced wholesale, got %+v", updated.Milestones)
	}
}

func TestProjectService_Delete_OwnershipEnforced(t *testing.T) {
	repo, users, svc, pro, client := projectFixtures(t)
	stranger := users.add(&domain.User{Name: "Other", Email: "other@example.com", Role: domain.RoleClient})
	project := repo.add(&domain.Project{Title: "P", Status: domain.ProjectPlanning, ProID: pro.ID, ClientID: client.ID})

	if err := svc.Delete(context.Background(), ports.Actor{UserID: stranger.ID, Role: domain.RoleClient}, project.ID); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := svc.Delete(context.Background(), ports.Actor{UserID: pro.ID, Role: domain.RolePro}, project.ID); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
	if err := svc.Delete(context.Background(), ports.Actor{UserID: pro.ID, Role: domain.RolePro}, project.ID); err != domain.ErrProjectNotFound {
		t.Fatalf("expected ErrProjectNotFound after delete, got %v", err)
	}
}
