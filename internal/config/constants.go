package config

import "time"

// 検証コード・学習セッション関連の定数
const (
	// VerificationCodeLength は送信するメール検証コードの桁数
	VerificationCodeLength = 6
	// VerificationCodeTTL は検証コードの有効期間（再送信で上書きされる）
	VerificationCodeTTL = 10 * time.Minute

	// LearningSessionTTL は学習セッションの有効期間
	LearningSessionTTL = 2 * time.Hour
	// DefaultSessionWordCount はセッション1回の既定単語数
	DefaultSessionWordCount = 20
	// MaxSessionWordCount はセッション1回の上限単語数
	MaxSessionWordCount = 50

	// MaxAvatarSizeLocal はローカル保存時の上限サイズ
	MaxAvatarSizeLocal = 2 * 1024 * 1024
	// MaxAvatarSizeMinio はオブジェクトストレージ保存時の上限サイズ
	MaxAvatarSizeMinio = 5 * 1024 * 1024
)
