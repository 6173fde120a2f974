package dummydb

import (
	"sync"

	"github.com/trezcool/darasa/core/export"
	"github.com/trezcool/darasa/core/feedback"
	"github.com/trezcool/darasa/core/partner"
	"github.com/trezcool/darasa/core/profile"
	"github.com/trezcool/darasa/core/report"
	"github.com/trezcool/darasa/core/user"
)

type (
	DB struct {
		user     *userTable
		profile  *profileTable
		identity *identityTable
		feedback *feedbackTable
		report   *reportTable
		partner  *partnerTable
	}

	userTable struct {
		sync.RWMutex
		table map[string]*user.User
	}

	profileTable struct {
		sync.RWMutex
		table map[string]*profile.Profile
	}

	identityTable struct {
		sync.RWMutex
		table map[string]*export.Identity
	}

	feedbackTable struct {
		sync.RWMutex
		table map[string]*feedback.Record
	}

	reportTable struct {
		sync.RWMutex
		communityMessages map[string]*report.Message
		communityReports  map[string]*report.Report
		studyRoomMessages map[string]*report.Message
		studyRoomReports  map[string]*report.Report
		rooms             map[string]*report.Room
	}

	partnerTable struct {
		sync.RWMutex
		table map[string]*partner.Partner
	}
)

func Open() (*DB, error) {
	db := &DB{
		user:     &userTable{table: make(map[string]*user.User)},
		profile:  &profileTable{table: make(map[string]*profile.Profile)},
		identity: &identityTable{table: make(map[string]*export.Identity)},
		feedback: &feedbackTable{table: make(map[string]*feedback.Record)},
		report: &reportTable{
			communityMessages: make(map[string]*report.Message),
			communityReports:  make(map[string]*report.Report),
			studyRoomMessages: make(map[string]*report.Message),
			studyRoomReports:  make(map[string]*report.Report),
			rooms:             make(map[string]*report.Room),
		},
		partner: &partnerTable{table: make(map[string]*partner.Partner)},
	}
	return db, nil
}
