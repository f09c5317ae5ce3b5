package resume

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShubhamCodes10/ai-resume-builder/internal/types"
)

// memorySessionStore 测试用的内存会话存储
type memorySessionStore struct {
	sessions map[string]types.ResumeData
}

func newMemorySessionStore() *memorySessionStore {
	return &memorySessionStore{sessions: make(map[string]types.ResumeData)}
}

func (s *memorySessionStore) SaveResumeSession(_ context.Context, sessionID string, data types.ResumeData) error {
	s.sessions[sessionID] = data
	return nil
}

func (s *memorySessionStore) GetResumeSession(_ context.Context, sessionID string) (*types.ResumeData, error) {
	data, ok := s.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	return &data, nil
}

func (s *memorySessionStore) DeleteResumeSession(_ context.Context, sessionID string) error {
	delete(s.sessions, sessionID)
	return nil
}

func TestSessionManager_CreateAndGet(t *testing.T) {
	manager := NewSessionManager(newMemorySessionStore())
	ctx := context.Background()

	sessionID, data, err := manager.Create(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, sessionID)
	assert.NotNil(t, data.Education)

	got, err := manager.Get(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestSessionManager_GetMissing(t *testing.T) {
	manager := NewSessionManager(newMemorySessionStore())

	_, err := manager.Get(context.Background(), "no-such-session")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionManager_UpdatePartial(t *testing.T) {
	manager := NewSessionManager(newMemorySessionStore())
	ctx := context.Background()

	sessionID, _, err := manager.Create(ctx)
	require.NoError(t, err)

	summary := "后端工程师"
	education := []types.Education{{Institution: "MIT", Degree: "BS"}}
	updated, err := manager.Update(ctx, sessionID, types.ResumeDataUpdate{
		Summary:   &summary,
		Education: &education,
	})
	require.NoError(t, err)
	assert.Equal(t, "后端工程师", updated.Summary)
	assert.Equal(t, education, updated.Education)

	// 再做一次只改摘要的更新，教育经历必须保持不变
	summary2 := "资深后端工程师"
	updated, err = manager.Update(ctx, sessionID, types.ResumeDataUpdate{Summary: &summary2})
	require.NoError(t, err)
	assert.Equal(t, "资深后端工程师", updated.Summary)
	assert.Equal(t, education, updated.Education)
}

func TestSessionManager_UpdateMissingSession(t *testing.T) {
	manager := NewSessionManager(newMemorySessionStore())

	summary := "x"
	_, err := manager.Update(context.Background(), "gone", types.ResumeDataUpdate{Summary: &summary})
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionManager_ApplyExtraction(t *testing.T) {
	manager := NewSessionManager(newMemorySessionStore())
	ctx := context.Background()

	extracted := &types.ExtractedResumeData{
		Name:  "John Smith",
		Email: "john@example.com",
	}

	// 空会话ID时新建会话
	sessionID, merged, err := manager.ApplyExtraction(ctx, "", extracted)
	require.NoError(t, err)
	require.NotEmpty(t, sessionID)
	assert.Equal(t, "John Smith", merged.PersonalInfo.FullName)

	// 对已有会话再次合并：已填写的摘要不能被空抽取覆盖
	summary := "手工填写的摘要"
	_, err = manager.Update(ctx, sessionID, types.ResumeDataUpdate{Summary: &summary})
	require.NoError(t, err)

	sameID, merged, err := manager.ApplyExtraction(ctx, sessionID, &types.ExtractedResumeData{Name: "John Smith"})
	require.NoError(t, err)
	assert.Equal(t, sessionID, sameID)
	assert.Equal(t, "手工填写的摘要", merged.Summary)
	assert.Equal(t, "John Smith", merged.PersonalInfo.FullName)
}

func TestSessionManager_Delete(t *testing.T) {
	manager := NewSessionManager(newMemorySessionStore())
	ctx := context.Background()

	sessionID, _, err := manager.Create(ctx)
	require.NoError(t, err)
	require.NoError(t, manager.Delete(ctx, sessionID))

	_, err = manager.Get(ctx, sessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
