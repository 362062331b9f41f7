package service

import (
	"newsboard/database"
	"newsboard/database/model"

	"gorm.io/gorm"
)

type NewsService struct{}

// GetVisibleNews returns every public post plus, for an authenticated
// user, that user's private posts. Order is insertion order.
func (s *NewsService) GetVisibleNews(userId int, authenticated bool) ([]model.News, error) {
	db := database.GetDB()

	var news []model.News
	q := db.Model(model.News{})
	if authenticated {
		q = q.Where("is_private = ? OR user_id = ?", false, userId)
	} else {
		q = q.Where("is_private = ?", false)
	}
	err := q.Find(&news).Error
	return news, err
}

// GetUserNews returns the post only when it exists and belongs to the
// given user. A missing post and someone else's post both come back as
// gorm.ErrRecordNotFound, so callers cannot tell them apart.
func (s *NewsService) GetUserNews(id int, userId int) (*model.News, error) {
	db := database.GetDB()

	news := &model.News{}
	err := db.Model(model.News{}).
		Where("id = ? AND user_id = ?", id, userId).
		First(news).
		Error
	if err != nil {
		return nil, err
	}
	return news, nil
}

func (s *NewsService) AddNews(userId int, title string, content string, isPrivate bool) (*model.News, error) {
	db := database.GetDB()

	news := &model.News{
		Title:     title,
		Content:   content,
		IsPrivate: isPrivate,
		UserId:    userId,
	}
	if err := db.Create(news).Error; err != nil {
		return nil, err
	}
	return news, nil
}

// UpdateNews replaces the post fields in place. Ownership is re-checked
// inside the UPDATE itself, so a post deleted or re-owned between
// display and submit simply comes back as not found.
func (s *NewsService) UpdateNews(id int, userId int, title string, content string, isPrivate bool) error {
	db := database.GetDB()

	result := db.Model(model.News{}).
		Where("id = ? AND user_id = ?", id, userId).
		Updates(map[string]any{
			"title":      title,
			"content":    content,
			"is_private": isPrivate,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DelNews permanently removes the post when it is owned by the given
// user.
func (s *NewsService) DelNews(id int, userId int) error {
	db := database.GetDB()

	result := db.Where("id = ? AND user_id = ?", id, userId).
		Delete(model.News{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
