// Package codec 提供录制会话的序列化
package codec

import (
	"encoding/json"
	"fmt"

	"github.com/weisyn/taskrace/pkg/types"
)

// EncodeSession 会话序列化为 JSON
func EncodeSession(session *types.RecordingSession) ([]byte, error) {
	if session == nil {
		return nil, fmt.Errorf("会话不能为空")
	}
	if session.ID == "" {
		return nil, fmt.Errorf("会话ID不能为空")
	}
	data, err := json.Marshal(session)
	if err != nil {
		return nil, fmt.Errorf("序列化会话失败: %w", err)
	}
	return data, nil
}

// DecodeSession 从 JSON 反序列化会话
func DecodeSession(data []byte) (*types.RecordingSession, error) {
	var session types.RecordingSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("反序列化会话失败: %w", err)
	}
	return &session, nil
}
