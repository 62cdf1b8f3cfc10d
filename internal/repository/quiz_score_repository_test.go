package repository

import (
	"learning_coach_backend/internal/model"
	"os"
	"testing"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// 需要真实 MySQL 才能跑，例如:
// TEST_MYSQL_DSN="root:root@tcp(127.0.0.1:3306)/learning_coach_test?charset=utf8mb4&parseTime=True" go test ./internal/repository/
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_MYSQL_DSN")
	if dsn == "" {
		t.Skip("TEST_MYSQL_DSN not set")
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open mysql: %v", err)
	}
	if err := db.AutoMigrate(&model.QuizScore{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		db.Exec("DELETE FROM quiz_scores")
	})
	return db
}

func TestQuizScoreRepository(t *testing.T) {
	repo := NewQuizScoreRepository(testDB(t))

	now := time.Now().Truncate(time.Second)
	seed := []model.QuizScore{
		{UserID: 1, Topic: "Go", Score: 4, TotalQuestions: 5, Percentage: 80, CompletedAt: now.AddDate(0, 0, -2)},
		{UserID: 1, Topic: "SQL", Score: 3, TotalQuestions: 5, Percentage: 60, CompletedAt: now.AddDate(0, 0, -1)},
		{UserID: 1, Topic: "Go", Score: 5, TotalQuestions: 5, Percentage: 100, CompletedAt: now},
		{UserID: 2, Topic: "Go", Score: 1, TotalQuestions: 5, Percentage: 20, CompletedAt: now},
	}
	for i := range seed {
		if err := repo.Create(&seed[i]); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	// ListByUser 只取本人记录，按完成时间升序
	scores, err := repo.ListByUser(1)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("len = %d, want 3", len(scores))
	}
	if scores[0].Percentage != 80 || scores[2].Percentage != 100 {
		t.Errorf("order wrong: %v, %v", scores[0].Percentage, scores[2].Percentage)
	}

	// ListRecent 降序并截断
	recent, err := repo.ListRecent(1, 2)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(recent) != 2 || recent[0].Percentage != 100 {
		t.Errorf("recent = %+v", recent)
	}

	count, err := repo.CountByUser(1)
	if err != nil {
		t.Fatalf("CountByUser: %v", err)
	}
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}
}
