package usecase

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"diary-app/src/domain"
)

const maxNicknameLength = 20

var ErrInvalidNickname = errors.New("nickname is required and must be at most 20 characters")

// UserUsecase defines the interface for profile operations
type UserUsecase interface {
	GetUser(ctx context.Context) (*domain.User, error)
	UpdateNickname(ctx context.Context, nickname string) (*domain.User, error)
}

type userUsecase struct {
	userRepo domain.UserRepository
}

// NewUserUsecase creates a new user usecase
func NewUserUsecase(userRepo domain.UserRepository) UserUsecase {
	return &userUsecase{
		userRepo: userRepo,
	}
}

// GetUser returns the local profile, creating it on first access.
func (u *userUsecase) GetUser(ctx context.Context) (*domain.User, error) {
	return u.userRepo.Get(ctx)
}

// UpdateNickname validates and persists a new nickname.
// 20文字まで。文字数はバイト数ではなく rune 数で数える。
func (u *userUsecase) UpdateNickname(ctx context.Context, nickname string) (*domain.User, error) {
	nickname = strings.TrimSpace(nickname)
	if nickname == "" || utf8.RuneCountInString(nickname) > maxNicknameLength {
		return nil, ErrInvalidNickname
	}
	return u.userRepo.UpdateNickname(ctx, nickname)
}
