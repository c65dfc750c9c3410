package config

import (
	"log"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// Config 结构体用于存储应用程序的配置信息
type Config struct {
	Port             string
	DBHost           string
	DBPort           string
	DBUser           string
	DBPassword       string
	DBName           string
	DBSSLMode        string
	DBSchema         string
	JWTSecret        string
	LogLevel         string
	SMTPHost         string
	SMTPPort         int
	SMTPUsername     string
	SMTPPassword     string
	FrontendURL      string
	BackendURL       string
	StorageBackend   string // s3 / gcs / local
	S3Region         string
	S3Bucket         string
	GCSProjectID     string
	GCSBucketName    string
	GCSCredentials   string
	LocalStoragePath string
	AdminUserID      int
	AdminUsername    string
	GuestUserID      int
	GuestUsername    string
	Debug            bool // 是否开启调试模式
}

// AppConfig 是全局配置变量
var AppConfig Config

// Init 函数用于初始化配置
func Init() {
	// 加载 .env 文件
	err := godotenv.Load()
	if err != nil {
		log.Printf("警告：无法加载 .env 文件: %v", err)
	}

	// 从环境变量中读取配置
	AppConfig = Config{
		Port:             getEnv("PORT", "8080"),
		DBHost:           getEnv("DB_HOST", "localhost"),
		DBPort:           getEnv("DB_PORT", "5432"),
		DBUser:           getEnv("DB_USER", ""),
		DBPassword:       getEnv("DB_PASSWORD", ""),
		DBName:           getEnv("DB_NAME", ""),
		DBSSLMode:        getEnv("DB_SSLMODE", "disable"),
		DBSchema:         getEnv("DB_SCHEMA", "spotify"),
		JWTSecret:        getEnv("JWT_SECRET", ""),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		SMTPHost:         getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:         getEnvAsInt("SMTP_PORT", 465),
		SMTPUsername:     getEnv("SMTP_USERNAME", ""),
		SMTPPassword:     getEnv("SMTP_PASSWORD", ""),
		FrontendURL:      getEnv("FRONTEND_URL", "http://localhost:5173"),
		BackendURL:       getEnv("BACKEND_URL", "http://localhost:8080"),
		StorageBackend:   getEnv("STORAGE_BACKEND", "local"),
		S3Region:         getEnv("S3_REGION", "us-west-2"),
		S3Bucket:         getEnv("S3_BUCKET", "your-bucket-name"),
		GCSProjectID:     getEnv("GCS_PROJECT_ID", ""),
		GCSBucketName:    getEnv("GCS_BUCKET_NAME", ""),
		GCSCredentials:   getEnv("GCS_CREDENTIALS_FILE", ""),
		LocalStoragePath: getEnv("LOCAL_STORAGE_PATH", "./uploads"),
		AdminUserID:      getEnvAsInt("ADMIN_USER_ID", 1),
		AdminUsername:    getEnv("ADMIN_USERNAME", "admin"),
		GuestUserID:      getEnvAsInt("GUEST_USER_ID", 2),
		GuestUsername:    getEnv("GUEST_USERNAME", "guest"),
		Debug:            getEnvAsBool("DEBUG", true),
	}

	validateConfig()

	if AppConfig.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
}

// validateConfig 检查关键配置项是否缺失
func validateConfig() {
	if AppConfig.JWTSecret == "" {
		log.Fatal("JWT_SECRET 未配置")
	}
	if AppConfig.DBUser == "" || AppConfig.DBName == "" {
		log.Fatal("数据库配置不完整")
	}
	switch AppConfig.StorageBackend {
	case "s3", "gcs", "local":
	default:
		log.Fatalf("不支持的存储后端: %s", AppConfig.StorageBackend)
	}
}

// DatabaseDSN 返回 PostgreSQL 连接字符串
func (c Config) DatabaseDSN() string {
	return "host=" + c.DBHost +
		" port=" + c.DBPort +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" sslmode=" + c.DBSSLMode +
		" search_path=" + c.DBSchema
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
