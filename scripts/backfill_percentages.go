// 手动修复测验成绩百分比脚本
//
// 历史数据中 percentage 字段可能因早期四舍五入方式不同而与
// score/total_questions 不一致，此脚本按当前口径重算并回写。
//
// 用法: go run scripts/backfill_percentages.go
package main

import (
	"learning_coach_backend/internal/config"
	"learning_coach_backend/internal/model"
	"learning_coach_backend/pkg/database"
	"learning_coach_backend/pkg/logger"
	"log"
	"math"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	var scores []model.QuizScore
	if err := db.Find(&scores).Error; err != nil {
		log.Fatalf("读取成绩失败: %v", err)
	}

	fixed := 0
	for _, s := range scores {
		if s.TotalQuestions <= 0 {
			continue
		}
		want := float64(s.Score) / float64(s.TotalQuestions) * 100
		if math.Abs(s.Percentage-want) < 0.001 {
			continue
		}
		if err := db.Model(&model.QuizScore{}).
			Where("id = ?", s.ID).
			Update("percentage", want).Error; err != nil {
			log.Printf("更新成绩 %d 失败: %v", s.ID, err)
			continue
		}
		fixed++
	}

	log.Printf("完成！共检查 %d 条记录，修复 %d 条", len(scores), fixed)
}
