package sms

import (
	"context"
	"errors"
	"sync"
)

type MockCall struct {
	Phone         string
	SignName      string
	TemplateCode  string
	TemplateParam string
}

// MockClient 可配置的短信客户端 mock，实现 Client 接口
type MockClient struct {
	mu    sync.Mutex
	Calls []MockCall

	// FailNext 置为 true 时，下一次调用返回 mock 错误并自动复位
	FailNext bool
}

func NewMockClient() *MockClient {
	return &MockClient{
		Calls: make([]MockCall, 0),
	}
}

func (m *MockClient) SendSingle(ctx context.Context, phone, signName, templateCode, templateParam string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailNext {
		m.FailNext = false
		return errors.New("mock sms send failure")
	}

	m.Calls = append(m.Calls, MockCall{
		Phone:         phone,
		SignName:      signName,
		TemplateCode:  templateCode,
		TemplateParam: templateParam,
	})

	return nil
}

func (m *MockClient) SendBatch(ctx context.Context, phones []string, signName, templateCode string, templateParams []string) error {
	for i, phone := range phones {
		param := ""
		if i < len(templateParams) {
			param = templateParams[i]
		}
		if err := m.SendSingle(ctx, phone, signName, templateCode, param); err != nil {
			return err
		}
	}
	return nil
}

// CallCount 线程安全地读取已发送条数
func (m *MockClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
