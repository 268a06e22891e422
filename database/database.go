package database

import (
	"fmt"
	"log"

	"fintrack/config"
	"fintrack/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Init 初始化数据库连接
func Init(cfg *config.Config) error {
	// 构建 MySQL DSN 连接字符串
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=%s&parseTime=True&loc=Local",
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DBName,
		cfg.Database.Charset,
	)

	var err error
	// TranslateError: 唯一索引冲突翻译为 gorm.ErrDuplicatedKey
	// "一人一月一条收入"的约束靠数据库唯一索引兜底，先查后写在并发下不可靠
	DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Info),
		TranslateError: true,
	})
	if err != nil {
		return fmt.Errorf("连接数据库失败: %w", err)
	}

	// 获取底层 *sql.DB 配置连接池
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	// 自动迁移数据库表
	if err := DB.AutoMigrate(
		&models.User{},
		&models.Income{},
		&models.IncomeCategory{},
		&models.Goal{},
		&models.PasswordReset{},
	); err != nil {
		return err
	}

	// 初始化默认收入类别（仅当表为空时）
	// ID 显式指定：ID=7 是保留的"存入目标"类别，收入记录只有属于它才能关联目标
	var catCount int64
	DB.Model(&models.IncomeCategory{}).Count(&catCount)
	if catCount == 0 {
		defaultCats := []models.IncomeCategory{
			{ID: 1, Name: "工资", Sort: 10, Color: "#10b981"},
			{ID: 2, Name: "奖金", Sort: 20, Color: "#3b82f6"},
			{ID: 3, Name: "理财", Sort: 30, Color: "#a855f7"},
			{ID: 4, Name: "兼职", Sort: 40, Color: "#f59e0b"},
			{ID: 5, Name: "礼金", Sort: 50, Color: "#ec4899"},
			{ID: 6, Name: "其他", Sort: 60, Color: "#64748b"},
			{ID: models.GoalContributionCategoryID, Name: "存入目标", Sort: 70, Color: "#14b8a6"},
		}
		if err := DB.Create(&defaultCats).Error; err != nil {
			log.Printf("警告: 初始化默认收入类别失败: %v", err)
		}
	}

	log.Println("数据库初始化成功")
	return nil
}

// GetDB 获取数据库连接
func GetDB() *gorm.DB {
	return DB
}
