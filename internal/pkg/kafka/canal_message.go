package kafka

import (
	"errors"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

var errTableMismatch = errors.New("table name not match")

// CanalMessage Canal 推送到 Kafka 的行变更，这里只关心表名和变更类型
type CanalMessage struct {
	ID       int64  `json:"id"`
	Database string `json:"database"`
	Table    string `json:"table"`
	IsDDL    bool   `json:"isDdl"`
	Type     string `json:"type"`
	TS       int64  `json:"ts"`

	Data []map[string]interface{} `json:"data"`
}

// ToCanalMessage 解析并校验表名
func ToCanalMessage(msg *sarama.ConsumerMessage, tableName string) (*CanalMessage, error) {
	var canalMsg CanalMessage
	if err := json.Unmarshal(msg.Value, &canalMsg); err != nil {
		return nil, err
	}
	if canalMsg.Table != tableName {
		return nil, errTableMismatch
	}
	return &canalMsg, nil
}
