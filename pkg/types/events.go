package types

import "time"

// Field はログフィールドのキー・値ペアを表します。
type Field struct {
	Key   string      `json:"key"`
	Value interface{} `json:"value"`
}

// FileWatchEvent はファイル監視イベントを表します。
type FileWatchEvent struct {
	Type      FileWatchEventType `json:"type"`
	Path      string             `json:"path"`
	Timestamp time.Time          `json:"timestamp"`
}

// FileWatchEventType はファイル監視イベントの種類を表します。
type FileWatchEventType string

const (
	FileWatchEventCreated  FileWatchEventType = "created"
	FileWatchEventModified FileWatchEventType = "modified"
	FileWatchEventDeleted  FileWatchEventType = "deleted"
	FileWatchEventRenamed  FileWatchEventType = "renamed"
)

// ReloadEvent はリロード試行の結果イベントを表します。
type ReloadEvent struct {
	Source    string        `json:"source"`
	Success   bool          `json:"success"`
	Error     string        `json:"error,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
	Duration  time.Duration `json:"duration"`
}

// ChangeNotification はコンポーネントへの設定変更通知を表します。
// 削除されたコンポーネントに対しては New が nil になります。
type ChangeNotification struct {
	Component string          `json:"component"`
	Old       ComponentConfig `json:"old"`
	New       ComponentConfig `json:"new"`
	Removed   bool            `json:"removed"`
}
