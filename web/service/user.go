package service

import (
	"newsboard/database"
	"newsboard/database/model"
	"newsboard/logger"
	"newsboard/util/common"
	"newsboard/util/crypto"
)

// ErrUserExists is returned when registering a login that is already
// taken.
var ErrUserExists = common.NewErrorf("user already exists")

type UserService struct{}

func (s *UserService) GetUserByLogin(login string) (*model.User, error) {
	db := database.GetDB()

	user := &model.User{}
	err := db.Model(model.User{}).
		Where("login = ?", login).
		First(user).
		Error
	if err != nil {
		return nil, err
	}
	return user, nil
}

// AddUser creates an account with a hashed password. The login must be
// unused.
func (s *UserService) AddUser(login string, password string) (*model.User, error) {
	db := database.GetDB()

	var count int64
	err := db.Model(model.User{}).
		Where("login = ?", login).
		Count(&count).
		Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrUserExists
	}

	hashedPassword, err := crypto.HashPasswordAsBcrypt(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Login:    login,
		Password: hashedPassword,
	}
	if err := db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CheckUser returns the user when login and password match, nil
// otherwise. Unknown login and wrong password are indistinguishable to
// the caller.
func (s *UserService) CheckUser(login string, password string) *model.User {
	db := database.GetDB()

	user := &model.User{}
	err := db.Model(model.User{}).
		Where("login = ?", login).
		First(user).
		Error
	if database.IsNotFound(err) {
		return nil
	} else if err != nil {
		logger.Warning("check user err:", err)
		return nil
	}

	if !crypto.CheckPasswordHash(user.Password, password) {
		return nil
	}

	return user
}

func (s *UserService) UpdatePassword(id int, newPassword string) error {
	hashedPassword, err := crypto.HashPasswordAsBcrypt(newPassword)
	if err != nil {
		return err
	}

	db := database.GetDB()
	return db.Model(model.User{}).
		Where("id = ?", id).
		Update("password", hashedPassword).
		Error
}
