// Package dao 实现数据访问层
package dao

import (
	"fmt"
	"os"
	"time"

	"github.com/haierkeys/storyboard-studio-service/global"
	"github.com/haierkeys/storyboard-studio-service/pkg/fileurl"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// Database 数据库配置
type Database struct {
	Type            string `yaml:"type" default:"sqlite"`
	Path            string `yaml:"path" default:"storage/database/storyboard.db"`
	Host            string `yaml:"host"`
	Name            string `yaml:"name"`
	UserName        string `yaml:"user-name"`
	Password        string `yaml:"password"`
	Charset         string `yaml:"charset" default:"utf8mb4"`
	ParseTime       bool   `yaml:"parse-time" default:"true"`
	TablePrefix     string `yaml:"table-prefix"`
	MaxIdleConns    int    `yaml:"max-idle-conns" default:"10"`
	MaxOpenConns    int    `yaml:"max-open-conns" default:"30"`
	ConnMaxLifetime int    `yaml:"conn-max-lifetime" default:"3600"`
}

// Dao 聚合数据库句柄，各仓储从这里取连接
type Dao struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Dao {
	return &Dao{db: db}
}

func (d *Dao) DB() *gorm.DB {
	return d.db
}

func dialector(c *Database) (gorm.Dialector, error) {
	switch c.Type {
	case "sqlite":
		path := c.Path
		if !fileurl.IsAbsPath(path) {
			path = global.ROOT + path
		}
		if err := fileurl.CreatePath(path, os.ModePerm); err != nil {
			return nil, err
		}
		return sqlite.Open(path), nil
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=%s&parseTime=%t&loc=Local",
			c.UserName, c.Password, c.Host, c.Name, c.Charset, c.ParseTime)
		return mysql.Open(dsn), nil
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s sslmode=disable",
			c.Host, c.UserName, c.Password, c.Name)
		return postgres.Open(dsn), nil
	}
	return nil, fmt.Errorf("unsupported database type: %s", c.Type)
}

// NewDBEngine 创建数据库引擎
func NewDBEngine(c *Database) (*gorm.DB, error) {

	d, err := dialector(c)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(d, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   c.TablePrefix,
			SingularTable: true,
		},
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(c.MaxIdleConns)
	sqlDB.SetMaxOpenConns(c.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Duration(c.ConnMaxLifetime) * time.Second)

	return db, nil
}
