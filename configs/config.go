package config

import "os"

type R2 struct {
	AccountID  string
	AccessKey  string
	SecretKey  string
	BucketName string
	PublicURL  string
}

type Config struct {
	ListenAddr     string
	PostgresURI    string
	RedisURI       string
	SecretKey      string
	UploadDir      string
	StorageBackend string // "local" or "r2"
	R2             R2
}

func LoadConfig() *Config {
	return &Config{
		ListenAddr:     getEnv("LISTEN_ADDR", ":3000"),
		PostgresURI:    getEnv("POSTGRES_URI", ""),
		RedisURI:       getEnv("REDIS_URI", "localhost:6379"),
		SecretKey:      getEnv("SECRET_KEY", ""),
		UploadDir:      getEnv("UPLOAD_DIR", "uploaded_files"),
		StorageBackend: getEnv("STORAGE_BACKEND", "local"),
		R2: R2{
			AccountID:  getEnv("R2_ACCOUNT_ID", ""),
			AccessKey:  getEnv("R2_ACCESS_KEY", ""),
			SecretKey:  getEnv("R2_SECRET_KEY", ""),
			BucketName: getEnv("R2_BUCKET_NAME", ""),
			PublicURL:  getEnv("R2_PUBLIC_URL", ""),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
