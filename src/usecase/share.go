package usecase

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"time"

	"diary-app/src/domain"

	"github.com/sirupsen/logrus"
)

var (
	ErrShareNotFound  = errors.New("shared diary not found")
	ErrInvalidPayload = errors.New("invalid share payload")
	ErrDiaryNotPublic = errors.New("diary is not public")
)

// ShareRef is a reference to a shared diary. Exactly one variant is used:
// lookup by share ID against local storage, or a self-contained encoded
// payload that needs no storage.
type ShareRef interface {
	isShareRef()
}

// ByShareID resolves through the local storage lookup scheme.
type ByShareID string

// ByPayload resolves through the self-contained encoded scheme.
type ByPayload string

func (ByShareID) isShareRef() {}
func (ByPayload) isShareRef() {}

// SharedDiary is the renderable view both schemes produce.
type SharedDiary struct {
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// ShareValues holds both link parameter values for a public diary.
type ShareValues struct {
	ShareID string `json:"shareId"`
	Payload string `json:"payload"`
}

// sharePayload is the reversible encoding carried in ?data= links.
type sharePayload struct {
	Title   string    `json:"title"`
	Content string    `json:"content"`
	Date    time.Time `json:"date"`
}

// ShareUsecase resolves share references and produces share link values.
type ShareUsecase interface {
	Resolve(ctx context.Context, ref ShareRef) (*SharedDiary, error)
	ShareDiary(ctx context.Context, id string) (*ShareValues, error)
	EncodePayload(diary *domain.Diary) (string, error)
}

type shareUsecase struct {
	diaryRepo domain.DiaryRepository
	logger    *logrus.Logger
}

// NewShareUsecase creates a new share usecase
func NewShareUsecase(diaryRepo domain.DiaryRepository, logger *logrus.Logger) ShareUsecase {
	return &shareUsecase{
		diaryRepo: diaryRepo,
		logger:    logger,
	}
}

// Resolve turns a share reference into a renderable view. The consumer
// does not need to know which scheme was used.
func (u *shareUsecase) Resolve(ctx context.Context, ref ShareRef) (*SharedDiary, error) {
	switch r := ref.(type) {
	case ByShareID:
		return u.resolveByShareID(ctx, string(r))
	case ByPayload:
		return u.resolvePayload(string(r))
	default:
		return nil, ErrShareNotFound
	}
}

func (u *shareUsecase) resolveByShareID(ctx context.Context, shareID string) (*SharedDiary, error) {
	diary, err := u.diaryRepo.GetByShareID(ctx, shareID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrShareNotFound
		}
		return nil, err
	}
	return &SharedDiary{
		Title:     diary.Title,
		Content:   diary.Content,
		CreatedAt: diary.CreatedAt,
	}, nil
}

// resolvePayload decodes a self-contained payload. Storage is never
// consulted; the only failure mode is a malformed payload.
func (u *shareUsecase) resolvePayload(encoded string) (*SharedDiary, error) {
	raw, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		// 旧形式のリンクは標準エンコーディングの場合がある
		raw, err = base64.StdEncoding.DecodeString(encoded)
	}
	if err != nil {
		u.logger.WithError(err).Warn("共有ペイロードのデコードに失敗")
		return nil, ErrInvalidPayload
	}

	var payload sharePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		u.logger.WithError(err).Warn("共有ペイロードの解析に失敗")
		return nil, ErrInvalidPayload
	}

	return &SharedDiary{
		Title:     payload.Title,
		Content:   payload.Content,
		CreatedAt: payload.Date,
	}, nil
}

// ShareDiary returns both link parameter values for a public diary.
// 非公開の日記は共有できない。
func (u *shareUsecase) ShareDiary(ctx context.Context, id string) (*ShareValues, error) {
	diary, err := u.diaryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrDiaryNotFound
		}
		return nil, err
	}

	if !diary.IsPublic || diary.ShareID == "" {
		return nil, ErrDiaryNotPublic
	}

	payload, err := u.EncodePayload(diary)
	if err != nil {
		return nil, err
	}

	return &ShareValues{
		ShareID: diary.ShareID,
		Payload: payload,
	}, nil
}

// EncodePayload produces the reversible encoding of {title, content, date}.
func (u *shareUsecase) EncodePayload(diary *domain.Diary) (string, error) {
	raw, err := json.Marshal(sharePayload{
		Title:   diary.Title,
		Content: diary.Content,
		Date:    diary.CreatedAt,
	})
	if err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(raw), nil
}
