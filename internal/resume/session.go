package resume

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog"

	"github.com/ShubhamCodes10/ai-resume-builder/internal/logger"
	"github.com/ShubhamCodes10/ai-resume-builder/internal/types"
)

// ErrSessionNotFound 编辑会话不存在或已过期
var ErrSessionNotFound = errors.New("编辑会话不存在或已过期")

// SessionStore 会话持久化的抽象。查不到时返回 (nil, nil)。
type SessionStore interface {
	SaveResumeSession(ctx context.Context, sessionID string, data types.ResumeData) error
	GetResumeSession(ctx context.Context, sessionID string) (*types.ResumeData, error)
	DeleteResumeSession(ctx context.Context, sessionID string) error
}

// SessionManager 管理简历编辑会话。
// 会话对象由调用方通过会话ID显式持有，所有变更都走Update提交，
// 进程内不保存任何会话状态。
type SessionManager struct {
	store  SessionStore
	logger zerolog.Logger
}

// NewSessionManager 创建会话管理器
func NewSessionManager(store SessionStore) *SessionManager {
	return &SessionManager{
		store:  store,
		logger: logger.Logger.With().Str("component", "resume_session").Logger(),
	}
}

// Create 新建一个空白编辑会话，返回会话ID和完整默认化的简历记录
func (m *SessionManager) Create(ctx context.Context) (string, types.ResumeData, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", types.ResumeData{}, fmt.Errorf("生成会话ID失败: %w", err)
	}
	sessionID := id.String()

	data := types.NewResumeData()
	if err := m.store.SaveResumeSession(ctx, sessionID, data); err != nil {
		return "", types.ResumeData{}, err
	}

	m.logger.Debug().Str("session_id", sessionID).Msg("创建编辑会话")
	return sessionID, data, nil
}

// Get 读取会话中的当前简历
func (m *SessionManager) Get(ctx context.Context, sessionID string) (types.ResumeData, error) {
	data, err := m.store.GetResumeSession(ctx, sessionID)
	if err != nil {
		return types.ResumeData{}, err
	}
	if data == nil {
		return types.ResumeData{}, ErrSessionNotFound
	}
	return *data, nil
}

// Update 对会话中的简历应用局部更新并保存，返回更新后的完整记录。
// 更新中非nil的字段整体替换对应区块，nil字段保持不变。
func (m *SessionManager) Update(ctx context.Context, sessionID string, update types.ResumeDataUpdate) (types.ResumeData, error) {
	data, err := m.Get(ctx, sessionID)
	if err != nil {
		return types.ResumeData{}, err
	}

	applyUpdate(&data, update)

	if err := m.store.SaveResumeSession(ctx, sessionID, data); err != nil {
		return types.ResumeData{}, err
	}
	m.logger.Debug().Str("session_id", sessionID).Msg("会话简历已更新")
	return data, nil
}

// ApplyExtraction 把一份抽取结果归一化合并进会话（会话不存在时新建）。
// 返回会话ID和合并后的简历。
func (m *SessionManager) ApplyExtraction(ctx context.Context, sessionID string, extracted *types.ExtractedResumeData) (string, types.ResumeData, error) {
	var canonical types.ResumeData
	if sessionID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return "", types.ResumeData{}, fmt.Errorf("生成会话ID失败: %w", err)
		}
		sessionID = id.String()
		canonical = types.NewResumeData()
	} else {
		existing, err := m.store.GetResumeSession(ctx, sessionID)
		if err != nil {
			return "", types.ResumeData{}, err
		}
		if existing == nil {
			canonical = types.NewResumeData()
		} else {
			canonical = *existing
		}
	}

	merged := Normalize(extracted, canonical)
	if err := m.store.SaveResumeSession(ctx, sessionID, merged); err != nil {
		return "", types.ResumeData{}, err
	}
	return sessionID, merged, nil
}

// Delete 删除编辑会话
func (m *SessionManager) Delete(ctx context.Context, sessionID string) error {
	return m.store.DeleteResumeSession(ctx, sessionID)
}

// applyUpdate 非nil字段整体替换对应区块
func applyUpdate(data *types.ResumeData, update types.ResumeDataUpdate) {
	if update.PersonalInfo != nil {
		data.PersonalInfo = *update.PersonalInfo
	}
	if update.Summary != nil {
		data.Summary = *update.Summary
	}
	if update.Education != nil {
		data.Education = *update.Education
	}
	if update.Experience != nil {
		data.Experience = *update.Experience
	}
	if update.Projects != nil {
		data.Projects = *update.Projects
	}
	if update.Certifications != nil {
		data.Certifications = *update.Certifications
	}
	if update.AdditionalSkills != nil {
		data.AdditionalSkills = *update.AdditionalSkills
	}
	if update.Languages != nil {
		data.Languages = *update.Languages
	}
	if update.Interests != nil {
		data.Interests = *update.Interests
	}
}
