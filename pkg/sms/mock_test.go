package sms

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockClientRecordsCalls(t *testing.T) {
	client := NewMockClient()

	err := client.SendSingle(context.Background(), "9876543210", "laboros", "SMS_1001", `{"site":"Bopal Tower A"}`)

	require.NoError(t, err)
	require.Equal(t, 1, client.CallCount())
	assert.Equal(t, "9876543210", client.Calls[0].Phone)
	assert.Equal(t, "SMS_1001", client.Calls[0].TemplateCode)
}

func TestMockClientFailNext(t *testing.T) {
	client := NewMockClient()
	client.FailNext = true

	err := client.SendSingle(context.Background(), "9876543210", "laboros", "SMS_1001", "{}")
	assert.Error(t, err)

	// 失败开关一次性生效
	err = client.SendSingle(context.Background(), "9876543210", "laboros", "SMS_1001", "{}")
	assert.NoError(t, err)
	assert.Equal(t, 1, client.CallCount())
}

func TestMockClientSendBatch(t *testing.T) {
	client := NewMockClient()

	phones := []string{"9876543210", "9876543211"}
	params := []string{`{"a":"1"}`, `{"a":"2"}`}

	err := client.SendBatch(context.Background(), phones, "laboros", "SMS_1002", params)

	require.NoError(t, err)
	require.Equal(t, 2, client.CallCount())
	assert.Equal(t, `{"a":"2"}`, client.Calls[1].TemplateParam)
}
