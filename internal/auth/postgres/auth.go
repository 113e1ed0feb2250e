package postgres

import (
	"github.com/Dijital-human/yusu-admin/internal/auth"
	userDatamodel "github.com/Dijital-human/yusu-admin/internal/core/datamodel/user"
	"gorm.io/gorm"
)

type AuthRepository struct {
	db *gorm.DB
}

func NewAuthRepository(db *gorm.DB) auth.RepositoryAPI {
	return &AuthRepository{db: db}
}

func (r *AuthRepository) GetAdminByEmail(email string) (*userDatamodel.User, error) {
	return r.getAdmin("email = ?", email)
}

func (r *AuthRepository) GetAdminByID(id int64) (*userDatamodel.User, error) {
	return r.getAdmin("id = ?", id)
}

func (r *AuthRepository) getAdmin(cond string, arg interface{}) (*userDatamodel.User, error) {
	var account userDatamodel.User
	err := r.db.
		Where(cond, arg).
		Where("user_type = ?", userDatamodel.TypeAdmin).
		First(&account).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}
