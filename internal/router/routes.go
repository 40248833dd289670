package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rhythm-registry/internal/handlers"
	"rhythm-registry/internal/models"
)

// Priorities within a group.
const (
	priorityCollection = 0
	priorityLiteral    = 10
	priorityParam      = 20
)

var (
	superAdmin     = []models.Role{models.RoleSuperAdmin}
	artistManager  = []models.Role{models.RoleArtistManager}
	catalogViewers = []models.Role{models.RoleSuperAdmin, models.RoleArtistManager}
	anyRole        = []models.Role{models.RoleArtist, models.RoleSuperAdmin, models.RoleArtistManager}
	artistOnly     = []models.Role{models.RoleArtist}
)

// Routes is the full API table. authLimit runs ahead of the auth routes.
func Routes(api *handlers.API, authLimit gin.HandlerFunc) []Route {
	var authBefore []gin.HandlerFunc
	if authLimit != nil {
		authBefore = []gin.HandlerFunc{authLimit}
	}

	return []Route{
		{Group: GroupHealth, Method: http.MethodGet, Pattern: "/ping", Handler: api.Ping},
		{Group: GroupHealth, Method: http.MethodGet, Pattern: "/api/status", Handler: api.Status},
		{Group: GroupHealth, Method: http.MethodGet, Pattern: "/api/monitor/snapshot", Handler: api.MonitorSnapshot},

		{Group: GroupAuth, Method: http.MethodPost, Pattern: "/api/auth/register", Before: authBefore, Handler: api.Register},
		{Group: GroupAuth, Method: http.MethodPost, Pattern: "/api/auth/login", Before: authBefore, Handler: api.Login},

		{Group: GroupUser, Method: http.MethodGet, Pattern: "/api/users", Priority: priorityCollection, Roles: superAdmin, Handler: api.ListUsers},
		{Group: GroupUser, Method: http.MethodPost, Pattern: "/api/users", Priority: priorityCollection, Roles: superAdmin, Handler: api.CreateUser},
		{Group: GroupUser, Method: http.MethodPut, Pattern: "/api/users/:id", Priority: priorityParam, Roles: superAdmin, Handler: api.UpdateUser},
		{Group: GroupUser, Method: http.MethodDelete, Pattern: "/api/users/:id", Priority: priorityParam, Roles: superAdmin, Handler: api.DeleteUser},

		{Group: GroupArtist, Method: http.MethodGet, Pattern: "/api/artists", Priority: priorityCollection, Roles: catalogViewers, Handler: api.ListArtists},
		{Group: GroupArtist, Method: http.MethodPost, Pattern: "/api/artists", Priority: priorityCollection, Roles: artistManager, Handler: api.CreateArtist},
		{Group: GroupArtist, Method: http.MethodGet, Pattern: "/api/artists/export-csv", Priority: priorityLiteral, Roles: catalogViewers, Handler: api.ExportArtistsCSV},
		{Group: GroupArtist, Method: http.MethodPost, Pattern: "/api/artists/import-csv", Priority: priorityLiteral, Roles: artistManager, Handler: api.ImportArtistsCSV},
		{Group: GroupArtist, Method: http.MethodGet, Pattern: "/api/artists/me", Priority: priorityLiteral, Roles: anyRole, Handler: api.MyArtist},
		{Group: GroupArtist, Method: http.MethodPut, Pattern: "/api/artists/:id", Priority: priorityParam, Roles: artistManager, Handler: api.UpdateArtist},
		{Group: GroupArtist, Method: http.MethodDelete, Pattern: "/api/artists/:id", Priority: priorityParam, Roles: artistManager, Handler: api.DeleteArtist},

		{Group: GroupSong, Method: http.MethodGet, Pattern: "/api/artists/:id/songs", Priority: priorityCollection, Roles: anyRole, Ownership: true, Handler: api.ListSongs},
		{Group: GroupSong, Method: http.MethodPost, Pattern: "/api/artists/:id/songs", Priority: priorityCollection, Roles: artistOnly, Ownership: true, Handler: api.CreateSong},
		{Group: GroupSong, Method: http.MethodPut, Pattern: "/api/artists/:id/songs/:songId", Priority: priorityParam, Roles: artistOnly, Ownership: true, Handler: api.UpdateSong},
		{Group: GroupSong, Method: http.MethodDelete, Pattern: "/api/artists/:id/songs/:songId", Priority: priorityParam, Roles: artistOnly, Ownership: true, Handler: api.DeleteSong},
	}
}
