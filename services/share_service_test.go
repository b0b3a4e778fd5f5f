package services

import (
	"context"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"pcbtrack/config"
	"pcbtrack/models"
	"pcbtrack/repositories"
	"pcbtrack/utils"
)

func setTestConfig(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	config.AppConfig = &config.Config{
		Storage: config.StorageConfig{
			UploadDir:             filepath.Join(dir, "uploads"),
			ThumbnailDir:          filepath.Join(dir, "thumbnails"),
			MaxFilesPerUpload:     10,
			MaxFileSizeMB:         300,
			SessionRetentionHours: 24,
		},
		Share: config.ShareConfig{
			DefaultExpireHours: 24,
			VerifiedTTLHours:   24,
			ThumbnailMaxPixels: 256,
		},
	}
}

type shareFixture struct {
	users    *fakeUserRepo
	projects *fakeProjectRepo
	shares   *fakeShareRepo
	settings *fakeSettingsRepo
	collabs  *fakeCollabRepo
	access   *fakeShareAccessRepo
	svc      ShareService
	project  models.Project
}

func newShareFixture(t *testing.T) *shareFixture {
	setTestConfig(t)
	users := newFakeUserRepo()
	projects := newFakeProjectRepo()
	shares := newFakeShareRepo()
	settings := newFakeSettingsRepo()
	shareAccess := newFakeShareAccessRepo()
	collabs := newFakeCollabRepo()

	users.add(models.User{ID: 1, Username: "alice"})
	project := projects.add(models.Project{UserID: 1, Name: "amp", StorageKey: "alice-amp"})

	access := NewAccessService(projects, collabs)
	svc := NewShareService(users, projects, shares, settings, shareAccess, access)
	return &shareFixture{
		users:    users,
		projects: projects,
		shares:   shares,
		settings: settings,
		collabs:  collabs,
		access:   shareAccess,
		svc:      svc,
		project:  project,
	}
}

func (f *shareFixture) addCollaborator(t *testing.T, userID uint, permission string) {
	t.Helper()
	f.users.add(models.User{ID: userID, Username: "bob"})
	err := f.collabs.Create(context.Background(), nil, &models.Collaboration{
		ProjectID:      f.project.ID,
		OwnerID:        f.project.UserID,
		CollaboratorID: userID,
		Permission:     permission,
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestShareCreateAndDuplicate(t *testing.T) {
	f := newShareFixture(t)
	ctx := context.Background()

	info, err := f.svc.Create(ctx, f.project.ID, 1, ShareInput{})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if info.ExpireTime == nil {
		t.Fatal("expected default expiry to be set")
	}
	if info.HasPassword {
		t.Fatal("expected no password")
	}

	_, err = f.svc.Create(ctx, f.project.ID, 1, ShareInput{})
	expectAppError(t, err, http.StatusConflict)
}

func TestShareCreateNeverExpires(t *testing.T) {
	f := newShareFixture(t)
	never := -1
	info, err := f.svc.Create(context.Background(), f.project.ID, 1, ShareInput{ExpireHours: &never})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if info.ExpireTime != nil {
		t.Fatalf("expected no expiry, got %v", info.ExpireTime)
	}
}

func TestShareCreateByCollaborator(t *testing.T) {
	f := newShareFixture(t)
	ctx := context.Background()
	f.addCollaborator(t, 2, models.PermissionRead)

	info, err := f.svc.Create(ctx, f.project.ID, 2, ShareInput{})
	if err != nil {
		t.Fatalf("collaborator create failed: %v", err)
	}
	if f.shares.shares[info.ID].OwnerID != 1 {
		t.Fatal("share must record the project owner, not the creator")
	}

	// Duplicate is a conflict whether the owner or the collaborator asks.
	_, err = f.svc.Create(ctx, f.project.ID, 1, ShareInput{})
	expectAppError(t, err, http.StatusConflict)
	_, err = f.svc.Create(ctx, f.project.ID, 2, ShareInput{})
	expectAppError(t, err, http.StatusConflict)
}

func TestShareCreateRequiresProjectAccess(t *testing.T) {
	f := newShareFixture(t)
	f.users.add(models.User{ID: 3, Username: "carol"})
	_, err := f.svc.Create(context.Background(), f.project.ID, 3, ShareInput{})
	expectAppError(t, err, http.StatusForbidden)
}

func TestShareExpiredIsDeletedOnResolve(t *testing.T) {
	f := newShareFixture(t)
	ctx := context.Background()

	past := utils.Now().Add(-time.Hour)
	f.shares.shares["dead"] = models.Share{ID: "dead", ProjectID: f.project.ID, OwnerID: 1, ExpireTime: &past}

	_, err := f.svc.Resolve(ctx, "dead", "viewer")
	expectAppError(t, err, http.StatusNotFound)
	if _, ok := f.shares.shares["dead"]; ok {
		t.Fatal("expected expired share to be deleted")
	}
}

func TestShareQuotaExhaustedIsRefusedButKept(t *testing.T) {
	f := newShareFixture(t)
	ctx := context.Background()

	max := 1
	f.shares.shares["full"] = models.Share{ID: "full", ProjectID: f.project.ID, OwnerID: 1, AccessCount: 1, MaxAccessCount: &max}

	_, err := f.svc.Resolve(ctx, "full", "viewer")
	expectAppError(t, err, http.StatusForbidden)
	if _, ok := f.shares.shares["full"]; !ok {
		t.Fatal("exhausted share must not be deleted")
	}
}

func TestSharePasswordGate(t *testing.T) {
	f := newShareFixture(t)
	ctx := context.Background()

	f.shares.shares["locked"] = models.Share{
		ID:           "locked",
		ProjectID:    f.project.ID,
		OwnerID:      1,
		PasswordHash: utils.HashSharePassword("secret"),
	}

	if _, err := f.svc.RegisterView(ctx, "locked", "viewer"); err == nil {
		t.Fatal("expected view before verification to fail")
	}

	err := f.svc.VerifyPassword(ctx, "locked", "viewer", "wrong")
	expectAppError(t, err, http.StatusForbidden)

	if err := f.svc.VerifyPassword(ctx, "locked", "viewer", "secret"); err != nil {
		t.Fatalf("VerifyPassword failed: %v", err)
	}
	if _, err := f.svc.RegisterView(ctx, "locked", "viewer"); err != nil {
		t.Fatalf("RegisterView after verification failed: %v", err)
	}

	// A second viewer session must verify on its own.
	if _, err := f.svc.RegisterView(ctx, "locked", "other-viewer"); err == nil {
		t.Fatal("expected unverified second viewer to be rejected")
	}
}

func TestShareViewCountsOnlyContentViews(t *testing.T) {
	f := newShareFixture(t)
	ctx := context.Background()

	max := 1
	f.shares.shares["counted"] = models.Share{ID: "counted", ProjectID: f.project.ID, OwnerID: 1, MaxAccessCount: &max}

	meta, err := f.svc.Resolve(ctx, "counted", "viewer")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if !meta.Verified {
		t.Fatal("passwordless share should resolve as verified")
	}
	if f.shares.shares["counted"].AccessCount != 0 {
		t.Fatal("Resolve must not consume quota")
	}

	if _, err := f.svc.RegisterView(ctx, "counted", "viewer"); err != nil {
		t.Fatalf("RegisterView failed: %v", err)
	}
	if f.shares.shares["counted"].AccessCount != 1 {
		t.Fatalf("expected access count 1, got %d", f.shares.shares["counted"].AccessCount)
	}

	// Quota of one is now spent.
	_, err = f.svc.RegisterView(ctx, "counted", "viewer")
	expectAppError(t, err, http.StatusForbidden)
}

func TestShareCancel(t *testing.T) {
	f := newShareFixture(t)
	ctx := context.Background()

	info, err := f.svc.Create(ctx, f.project.ID, 1, ShareInput{})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	f.users.add(models.User{ID: 3, Username: "carol"})
	err = f.svc.Cancel(ctx, info.ID, 3)
	expectAppError(t, err, http.StatusForbidden)

	// Any collaborator may cancel, not just the owner.
	f.addCollaborator(t, 2, models.PermissionRead)
	if err := f.svc.Cancel(ctx, info.ID, 2); err != nil {
		t.Fatalf("collaborator cancel failed: %v", err)
	}
	err = f.svc.Cancel(ctx, info.ID, 1)
	expectAppError(t, err, http.StatusNotFound)
}

func TestShareGetForProjectDropsExpired(t *testing.T) {
	f := newShareFixture(t)
	ctx := context.Background()

	past := utils.Now().Add(-time.Hour)
	f.shares.shares["dead"] = models.Share{ID: "dead", ProjectID: f.project.ID, OwnerID: 1, ExpireTime: &past}

	_, err := f.svc.GetForProject(ctx, f.project.ID, 1)
	expectAppError(t, err, http.StatusNotFound)
	if _, ok := f.shares.shares["dead"]; ok {
		t.Fatal("expired share must be deleted when the project is queried")
	}
}

func TestShareHidesPricesWhenOwnerDoes(t *testing.T) {
	f := newShareFixture(t)
	ctx := context.Background()

	f.settings.rows[1] = models.UserSetting{UserID: 1, HidePrices: true}
	f.projects.bom[f.project.ID] = []repositories.BOMLine{
		{ComponentID: 1, Name: "op-amp", Price: 2.5, Quantity: 4},
	}

	f.shares.shares["open"] = models.Share{ID: "open", ProjectID: f.project.ID, OwnerID: 1}
	content, err := f.svc.RegisterView(ctx, "open", "viewer")
	if err != nil {
		t.Fatalf("RegisterView failed: %v", err)
	}
	if !content.HidePrices {
		t.Fatal("expected prices to be hidden")
	}
}
