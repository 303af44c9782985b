package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 应用全局配置结构体
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"db"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Log       LogConfig       `mapstructure:"log"`
	Audit     AuditConfig     `mapstructure:"audit"`
	Inventory InventoryConfig `mapstructure:"inventory"`
	Admin     AdminConfig     `mapstructure:"admin"`
}

// ServerConfig HTTP 服务器配置
type ServerConfig struct {
	Port      int        `mapstructure:"port"`
	BaseURL   string     `mapstructure:"base_url"`
	Timezone  string     `mapstructure:"timezone"`   // 日期过滤按该时区计算自然日边界
	BodyLimit int64      `mapstructure:"body_limit"` // 请求体上限（字节）
	CORS      CORSConfig `mapstructure:"cors"`
}

// Location 解析服务器时区，空值使用本地时区
func (c *ServerConfig) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// DatabaseConfig PostgreSQL 数据库配置
type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Name            string `mapstructure:"name"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	SSLMode         string `mapstructure:"sslmode"`
	Timezone        string `mapstructure:"timezone"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`  // 连接最大生命周期（分钟）
	ConnMaxIdleTime int    `mapstructure:"conn_max_idle_time"` // 空闲连接最大存活时间（分钟）
}

// DSN 生成 PostgreSQL 连接字符串
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode, c.Timezone,
	)
}

// RedisConfig Redis 缓存配置
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AuthConfig JWT 认证配置
type AuthConfig struct {
	JWTSecret        string        `mapstructure:"jwt_secret"`
	AccessTokenTTL   time.Duration `mapstructure:"access_token_ttl"`
	RefreshTokenTTL  time.Duration `mapstructure:"refresh_token_ttl"`
	LoginRateLimit   int           `mapstructure:"login_rate_limit"`  // 窗口内允许的登录请求数
	LoginRateWindow  time.Duration `mapstructure:"login_rate_window"` // 登录限流窗口
	BcryptCost       int           `mapstructure:"bcrypt_cost"`
	BlacklistEnabled bool          `mapstructure:"blacklist_enabled"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// AuditConfig 操作日志查询配置
// 各查询接口允许的角色可按部署调整
type AuditConfig struct {
	PageSize        int      `mapstructure:"page_size"`
	RecentLimit     int      `mapstructure:"recent_limit"`
	EmptyAsNotFound bool     `mapstructure:"empty_as_not_found"`
	OverallRoles    []string `mapstructure:"overall_roles"`
	EntityRoles     []string `mapstructure:"entity_roles"`
	RecentRoles     []string `mapstructure:"recent_roles"`
}

// InventoryConfig 资产模块配置
type InventoryConfig struct {
	PageSize     int `mapstructure:"page_size"`
	MaxBatchSize int `mapstructure:"max_batch_size"`
}

// AdminConfig 初始管理员账号（启动时不存在则创建）
type AdminConfig struct {
	Username string `mapstructure:"username"`
	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"`
}

// 合法角色
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Load 从配置文件与环境变量加载配置
// 优先级：环境变量 > 配置文件 > 默认值
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	// ── 配置文件 ──
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// ── 环境变量 ──
	v.SetEnvPrefix("INVENTRA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
		// 配置文件不存在时仅依赖默认值和环境变量
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	// ── 关键配置校验 ──
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.base_url", "http://localhost:8080")
	v.SetDefault("server.timezone", "Local")
	v.SetDefault("server.body_limit", 16<<10)
	v.SetDefault("server.cors.allow_origins", []string{"http://localhost:5173"})

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.name", "inventra")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.timezone", "UTC")
	v.SetDefault("db.max_open_conns", 25)
	v.SetDefault("db.max_idle_conns", 10)
	v.SetDefault("db.conn_max_lifetime", 60)  // 60分钟
	v.SetDefault("db.conn_max_idle_time", 30) // 30分钟

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("auth.jwt_secret", "") // 需有默认键，环境变量才能被 Unmarshal 读取
	v.SetDefault("auth.access_token_ttl", "15m")
	v.SetDefault("auth.refresh_token_ttl", "168h")
	v.SetDefault("auth.login_rate_limit", 10)
	v.SetDefault("auth.login_rate_window", "1m")
	v.SetDefault("auth.bcrypt_cost", 10)
	v.SetDefault("auth.blacklist_enabled", true)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("audit.page_size", 10)
	v.SetDefault("audit.recent_limit", 5)
	v.SetDefault("audit.empty_as_not_found", false)
	v.SetDefault("audit.overall_roles", []string{RoleAdmin})
	v.SetDefault("audit.entity_roles", []string{RoleAdmin, RoleUser})
	v.SetDefault("audit.recent_roles", []string{RoleAdmin, RoleUser})

	v.SetDefault("inventory.page_size", 10)
	v.SetDefault("inventory.max_batch_size", 100)

	v.SetDefault("admin.username", "admin")
	v.SetDefault("admin.email", "")
	v.SetDefault("admin.password", "")
}

// Validate 校验关键配置项
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("配置校验失败: auth.jwt_secret 不能为空")
	}
	if len(c.Auth.JWTSecret) < 16 {
		return fmt.Errorf("配置校验失败: auth.jwt_secret 长度不能少于 16 字符")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("配置校验失败: server.port 必须在 1-65535 之间")
	}
	if _, err := c.Server.Location(); err != nil {
		return fmt.Errorf("配置校验失败: server.timezone 无效: %w", err)
	}
	if c.Audit.PageSize <= 0 || c.Audit.RecentLimit <= 0 {
		return fmt.Errorf("配置校验失败: audit.page_size 与 audit.recent_limit 必须大于 0")
	}
	if c.Inventory.PageSize <= 0 || c.Inventory.MaxBatchSize <= 0 {
		return fmt.Errorf("配置校验失败: inventory.page_size 与 inventory.max_batch_size 必须大于 0")
	}
	for name, roles := range map[string][]string{
		"audit.overall_roles": c.Audit.OverallRoles,
		"audit.entity_roles":  c.Audit.EntityRoles,
		"audit.recent_roles":  c.Audit.RecentRoles,
	} {
		if len(roles) == 0 {
			return fmt.Errorf("配置校验失败: %s 不能为空", name)
		}
		for _, r := range roles {
			if r != RoleAdmin && r != RoleUser {
				return fmt.Errorf("配置校验失败: %s 包含未知角色 %q", name, r)
			}
		}
	}
	return nil
}
