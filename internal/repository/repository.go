package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	User     UserRepository
	Sponsor  SponsorRepository
	Event    EventRepository
	Team     TeamRepository
	Judge    JudgeRepository
	Rubric   RubricRepository
	Score    ScoreRepository
	Activity ActivityRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:     NewUserRepo(db),
		Sponsor:  NewSponsorRepo(db),
		Event:    NewEventRepo(db),
		Team:     NewTeamRepo(db),
		Judge:    NewJudgeRepo(db),
		Rubric:   NewRubricRepo(db),
		Score:    NewScoreRepo(db),
		Activity: NewActivityRepo(db),
	}
}
