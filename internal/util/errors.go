package util

import "errors"

var (
	ErrUserNotFound        = errors.New("用户不存在")
	ErrEmailRegistered     = errors.New("该邮箱已被注册")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrPlanNotFound        = errors.New("study plan not found")
	ErrQuizNotFound        = errors.New("quiz not found or expired")
	ErrAnswerMismatch      = errors.New("answer count does not match question count")
	ErrNoQuizData          = errors.New("No data available for PDF generation")
	ErrPlatformUnknown     = errors.New("unknown platform")
	ErrNotConnected        = errors.New("platform not connected")
	ErrUpstreamFailure     = errors.New("upstream platform request failed")
	ErrGenerationFailed    = errors.New("AI 生成失败")
	ErrMalformedGeneration = errors.New("generated content is not valid JSON")
)
