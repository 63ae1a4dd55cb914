package config

const (
	// DefaultDownloadBaseURL 解锁模板仓库 / the unlock template repository.
	DefaultDownloadBaseURL = "https://github.com/qwertyyuiopasdfghjklzxcvbnmqq/NPCs/raw/refs/heads/main"

	DefaultDownloadTimeoutSec = 60
	DefaultDownloadMaxSizeMB  = 50
)
