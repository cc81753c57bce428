package utils

import (
	"authbox/models"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// OpenRedisPool initializes a Redis connection pool
func OpenRedisPool(dsn string) *redis.Client {
	opt, err := redis.ParseURL(dsn)
	if err != nil {
		log.Fatalf("Failed to parse Redis DSN: %v", err)
	}

	// Configure connection pooling
	opt.PoolSize = 100
	opt.MinIdleConns = 2
	opt.DialTimeout = 5 * time.Second
	opt.ConnMaxIdleTime = 5 * time.Minute

	client := redis.NewClient(opt)
	if err = client.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Failed to ping redis db 0: %v", err)
	}

	return client
}

// StoreSession saves a session in Redis under session:<token> with the given TTL
// and adds it to the owning user's session index.
func StoreSession(client *redis.Client, session models.Session, ttl time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sessionMap := map[string]any{
		"user_id":       session.UserID,
		"created_at":    session.CreatedAt,
		"expires_at":    session.ExpiresAt,
		"last_activity": session.LastActivity,
		"user_agent":    session.UserAgent,
		"ip_address":    session.IPAddress,
	}

	key := "session:" + session.Token
	if err := client.HSet(ctx, key, sessionMap).Err(); err != nil {
		return err
	}

	if err := client.Expire(ctx, key, ttl).Err(); err != nil {
		return err
	}

	// Add to the user's session index
	return client.SAdd(ctx, "user_sessions:"+session.UserID, key).Err()
}

// GetSession retrieves session details from Redis
func GetSession(client *redis.Client, token string) (*models.Session, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	key := "session:" + token

	data, err := client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("session not found")
	}

	session := &models.Session{
		Token:        token,
		UserID:       data["user_id"],
		CreatedAt:    data["created_at"],
		ExpiresAt:    data["expires_at"],
		LastActivity: data["last_activity"],
		UserAgent:    data["user_agent"],
		IPAddress:    data["ip_address"],
	}

	return session, nil
}

// ValidateSession checks if a session exists and is not expired
func ValidateSession(client *redis.Client, token string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	key := "session:" + token

	exists, err := client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if exists == 0 {
		return false, nil
	}

	expiresAt, err := client.HGet(ctx, key, "expires_at").Result()
	if err != nil {
		return false, err
	}

	expiry, err := time.Parse(time.RFC3339, expiresAt)
	if err != nil {
		return false, err
	}

	return time.Now().Before(expiry), nil
}

// GetUserIDFromToken resolves a session token to the owning user's ID.
func GetUserIDFromToken(client *redis.Client, token string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	uID, err := client.HGet(ctx, "session:"+token, "user_id").Result()
	if err != nil {
		return "", err
	}

	return uID, nil
}

// UpdateLastActivity updates the last activity timestamp of a session
func UpdateLastActivity(client *redis.Client, token string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return client.HSet(ctx, "session:"+token, "last_activity", time.Now().Format(time.RFC3339)).Err()
}

// DeleteSession removes a single session and its reference in the user index
func DeleteSession(client *redis.Client, token string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Get the user ID from the session
	userID, err := client.HGet(ctx, "session:"+token, "user_id").Result()
	if err != nil {
		return err
	}

	if err := client.SRem(ctx, "user_sessions:"+userID, "session:"+token).Err(); err != nil {
		return err
	}

	return client.Del(ctx, "session:"+token).Err()
}

// DeleteAllUserSessions removes all sessions associated with a specific user
func DeleteAllUserSessions(client *redis.Client, userID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sessionKeys, err := client.SMembers(ctx, "user_sessions:"+userID).Result()
	if err != nil {
		return err
	}

	if len(sessionKeys) > 0 {
		if err := client.Del(ctx, sessionKeys...).Err(); err != nil {
			return err
		}
	}

	// Clean up the index itself
	return client.Del(ctx, "user_sessions:"+userID).Err()
}
