package database

import (
	"log"

	"purchasing-backend/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewConnection initializes a new connection pool using GORM
func NewConnection(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Auto-migrate core models
	err = db.AutoMigrate(
		&model.User{},
		&model.Role{},
		&model.Permission{},
		&model.PurchaseRequest{},
		&model.PurchaseRequestHistory{},
		&model.RequestSetting{},
	)
	if err != nil {
		log.Println("WARNING: Failed to auto-migrate models:", err)
	}

	return db, nil
}

// rolePermissions maps the built-in roles to their permission codes. The
// lifecycle engine only ever consumes the resulting yes/no decision.
var rolePermissions = map[string][]string{
	"admin": {
		"requests.read", "requests.write", "requests.status", "requests.reopen",
		"requests.actions", "requests.actions.resolve",
		"settings.read", "settings.write",
		"users.read", "users.write",
	},
	"purchaser": {
		"requests.read", "requests.write", "requests.status", "requests.actions",
		"settings.read",
	},
	"warehouse": {
		"requests.read", "requests.status",
	},
}

var permissionNames = map[string]string{
	"requests.read":            "View purchase requests",
	"requests.write":           "Create and edit purchase requests",
	"requests.status":          "Change request status",
	"requests.reopen":          "Reopen finished requests",
	"requests.actions":         "Propose administrative actions",
	"requests.actions.resolve": "Resolve administrative actions",
	"settings.read":            "View request settings",
	"settings.write":           "Edit request settings",
	"users.read":               "View users",
	"users.write":              "Create users",
}

// SeedAccessControl creates the built-in roles and permissions if missing.
func SeedAccessControl(db *gorm.DB) error {
	permsByCode := make(map[string]model.Permission)
	for code, name := range permissionNames {
		group := "requests"
		switch {
		case code == "settings.read" || code == "settings.write":
			group = "settings"
		case code == "users.read" || code == "users.write":
			group = "users"
		}

		var perm model.Permission
		if err := db.Where("code = ?", code).
			Attrs(model.Permission{Code: code, Name: name, Group: group}).
			FirstOrCreate(&perm).Error; err != nil {
			return err
		}
		permsByCode[code] = perm
	}

	for roleName, codes := range rolePermissions {
		var role model.Role
		if err := db.Where("name = ?", roleName).
			Attrs(model.Role{Name: roleName, IsSystem: true}).
			FirstOrCreate(&role).Error; err != nil {
			return err
		}

		perms := make([]model.Permission, 0, len(codes))
		for _, code := range codes {
			perms = append(perms, permsByCode[code])
		}
		if err := db.Model(&role).Association("Permissions").Replace(perms); err != nil {
			return err
		}
	}

	return nil
}
