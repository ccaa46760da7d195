package seed

import (
	"context"
	"errors"
	"log/slog"

	"gorm.io/gorm"

	"github.com/stockroom/inventory-api/internal/hash"
	"github.com/stockroom/inventory-api/internal/models"
	"github.com/stockroom/inventory-api/internal/repo"
)

// AdminUser makes sure the admin account exists with a usable password hash.
// A stored admin row with a corrupt (non-bcrypt) password is repaired by
// re-hashing the seed password in place; the row is never dropped.
func AdminUser(ctx context.Context, r *repo.GormRepo, l *slog.Logger, login, password string) error {
	admin, err := r.FindUserByLogin(ctx, login)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		pwHash, err := hash.HashPassword(password)
		if err != nil {
			return err
		}
		admin = &models.User{
			Login:        login,
			Name:         "Administrator",
			PasswordHash: pwHash,
			Role:         models.RoleAdmin,
		}
		if err := r.CreateUserIfNotExists(ctx, admin); err != nil && !errors.Is(err, repo.ErrUserAlreadyExist) {
			return err
		}
		l.Info("admin user created", "login", login)
		return nil
	}

	if !hash.IsBcryptHash(admin.PasswordHash) {
		pwHash, err := hash.HashPassword(password)
		if err != nil {
			return err
		}
		admin.PasswordHash = pwHash
		if err := r.SaveUser(ctx, admin); err != nil {
			return err
		}
		l.Warn("admin password hash was corrupt, re-hashed seed password", "login", login)
		return nil
	}

	l.Info("admin user already present", "login", login)
	return nil
}

// DemoProducts loads a small demo catalog, only when the product table is
// completely empty.
func DemoProducts(ctx context.Context, r *repo.GormRepo, l *slog.Logger) error {
	total, err := r.CountProducts(ctx)
	if err != nil {
		return err
	}
	if total > 0 {
		return nil
	}

	demo := []models.Product{
		{SKU: "IPHN-15-PNK", Name: "iPhone 15 Pink 128GB", Stock: 12},
		{SKU: "SMSG-S24-BLK", Name: "Samsung Galaxy S24 Black", Stock: 8},
		{SKU: "NTBK-DELL-I7", Name: "Dell Notebook i7 16GB", Stock: 5},
		{SKU: "MOUS-LGT-MX3", Name: "Logitech MX Master 3", Stock: 30},
	}
	for i := range demo {
		if err := r.CreateProduct(ctx, &demo[i]); err != nil {
			return err
		}
	}

	l.Info("demo products seeded", "count", len(demo))
	return nil
}
