package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"pcbtrack/models"
)

func expectAppError(t *testing.T, err error, wantCode int) {
	t.Helper()
	var appErr *AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.HTTPCode != wantCode {
		t.Fatalf("expected HTTP %d, got %d (%s)", wantCode, appErr.HTTPCode, appErr.Message)
	}
}

func TestAccessResolveOwner(t *testing.T) {
	projects := newFakeProjectRepo()
	collabs := newFakeCollabRepo()
	project := projects.add(models.Project{UserID: 1, Name: "amp", StorageKey: "alice-amp"})

	svc := NewAccessService(projects, collabs)
	got, permission, err := svc.Resolve(context.Background(), project.ID, 1)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if permission != models.PermissionOwner {
		t.Fatalf("expected owner permission, got %q", permission)
	}
	if got.ID != project.ID {
		t.Fatalf("expected project %d, got %d", project.ID, got.ID)
	}
}

func TestAccessResolveCollaborator(t *testing.T) {
	projects := newFakeProjectRepo()
	collabs := newFakeCollabRepo()
	project := projects.add(models.Project{UserID: 1, Name: "amp", StorageKey: "alice-amp"})
	collabs.Create(context.Background(), nil, &models.Collaboration{
		ProjectID:      project.ID,
		OwnerID:        1,
		CollaboratorID: 2,
		Permission:     models.PermissionWrite,
	})

	svc := NewAccessService(projects, collabs)
	_, permission, err := svc.Resolve(context.Background(), project.ID, 2)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if permission != models.PermissionWrite {
		t.Fatalf("expected write permission, got %q", permission)
	}
}

func TestAccessResolveStranger(t *testing.T) {
	projects := newFakeProjectRepo()
	collabs := newFakeCollabRepo()
	project := projects.add(models.Project{UserID: 1, Name: "amp", StorageKey: "alice-amp"})

	svc := NewAccessService(projects, collabs)
	_, _, err := svc.Resolve(context.Background(), project.ID, 99)
	expectAppError(t, err, http.StatusForbidden)
}

func TestAccessResolveMissingProject(t *testing.T) {
	svc := NewAccessService(newFakeProjectRepo(), newFakeCollabRepo())
	_, _, err := svc.Resolve(context.Background(), 42, 1)
	expectAppError(t, err, http.StatusNotFound)
}

func TestAccessRequireWriteRejectsReader(t *testing.T) {
	projects := newFakeProjectRepo()
	collabs := newFakeCollabRepo()
	project := projects.add(models.Project{UserID: 1, Name: "amp", StorageKey: "alice-amp"})
	collabs.Create(context.Background(), nil, &models.Collaboration{
		ProjectID:      project.ID,
		OwnerID:        1,
		CollaboratorID: 2,
		Permission:     models.PermissionRead,
	})

	svc := NewAccessService(projects, collabs)
	if _, err := svc.RequireWrite(context.Background(), project.ID, 2); err == nil {
		t.Fatal("expected write requirement to fail for read collaborator")
	}
	if _, err := svc.RequireOwner(context.Background(), project.ID, 2); err == nil {
		t.Fatal("expected owner requirement to fail for collaborator")
	}
}
