package cmd

import (
	"fmt"
	"log"
	"time"

	catalogDatamodel "github.com/Dijital-human/yusu-admin/internal/core/datamodel/catalog"
	userDatamodel "github.com/Dijital-human/yusu-admin/internal/core/datamodel/user"
	"github.com/Dijital-human/yusu-admin/internal/permissions"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var clearData bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with a super admin and sample categories for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		gormDB, err := initGorm(db)
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			fmt.Println("Clearing existing data")
			for _, table := range []string{"audit_logs", "products", "categories", "users"} {
				if err := gormDB.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
		}

		seedSuperAdmin(gormDB, cfg.Security.BCryptCost)
		seedCategories(gormDB)
	},
}

func init() {
	seedCmd.Flags().BoolVar(&clearData, "clear", false, "Clear existing data before seeding")
}

func seedSuperAdmin(db *gorm.DB, bcryptCost int) {
	const email = "admin@yusu.dev"

	var count int64
	if err := db.Model(&userDatamodel.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		log.Fatalf("failed to check super admin: %v", err)
	}
	if count > 0 {
		fmt.Println("Super admin already exists:", email)
		return
	}

	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcryptCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	now := time.Now()
	admin := &userDatamodel.User{
		Name:         "Super Admin",
		Email:        email,
		PasswordHash: string(hash),
		UserType:     userDatamodel.TypeAdmin,
		AdminRole:    string(permissions.RoleSuperAdmin),
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := db.Create(admin).Error; err != nil {
		log.Fatalf("failed to seed super admin: %v", err)
	}
	fmt.Println("Seeded super admin:", email)
}

func seedCategories(db *gorm.DB) {
	var count int64
	if err := db.Model(&catalogDatamodel.Category{}).Count(&count).Error; err != nil {
		log.Fatalf("failed to check categories: %v", err)
	}
	if count > 0 {
		fmt.Println("Categories already seeded")
		return
	}

	now := time.Now()
	electronics := &catalogDatamodel.Category{
		ID:          uuid.NewString(),
		Name:        "Electronics",
		Description: "Consumer electronics",
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	phones := &catalogDatamodel.Category{
		ID:          uuid.NewString(),
		Name:        "Phones",
		Description: "Mobile phones and accessories",
		ParentID:    &electronics.ID,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	clothing := &catalogDatamodel.Category{
		ID:          uuid.NewString(),
		Name:        "Clothing",
		Description: "Apparel and fashion",
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	for _, cat := range []*catalogDatamodel.Category{electronics, phones, clothing} {
		if err := db.Create(cat).Error; err != nil {
			log.Fatalf("failed to seed category %s: %v", cat.Name, err)
		}
		fmt.Println("Seeded category:", cat.Name)
	}
}
