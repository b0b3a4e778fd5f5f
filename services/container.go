package services

import "pcbtrack/repositories"

type Container struct {
	Auth           AuthService
	Users          UserService
	Access         AccessService
	Projects       ProjectService
	Collaborations CollaborationService
	Uploads        UploadService
	Shares         ShareService
	Files          FileService
	Thumbnails     ThumbnailService
	Catalog        CatalogService
	Admin          AdminService
	Cleanup        CleanupService
}

func BuildContainer(repos *repositories.Container) *Container {
	access := NewAccessService(repos.Projects, repos.Collaborations)
	files := NewFileService(repos.Users, access)
	shares := NewShareService(repos.Users, repos.Projects, repos.Shares, repos.Settings, repos.ShareAccess, access)

	return &Container{
		Auth:           NewAuthService(repos.TxManager, repos.Users, repos.Settings),
		Users:          NewUserService(repos.Users, repos.Settings),
		Access:         access,
		Projects:       NewProjectService(repos.TxManager, repos.Users, repos.Projects, repos.Collaborations, repos.Shares, repos.UploadSessions, repos.Settings, access),
		Collaborations: NewCollaborationService(repos.Users, repos.Collaborations, access),
		Uploads:        NewUploadService(repos.TxManager, repos.Users, repos.UploadSessions, access),
		Shares:         shares,
		Files:          files,
		Thumbnails:     NewThumbnailService(access, shares, files),
		Catalog:        NewCatalogService(repos.Catalog, repos.Components, repos.Projects),
		Admin:          NewAdminService(repos.TxManager, repos.Users, repos.Projects, repos.Collaborations, repos.Shares, repos.UploadSessions, repos.Settings),
		Cleanup:        NewCleanupService(repos.UploadSessions),
	}
}
