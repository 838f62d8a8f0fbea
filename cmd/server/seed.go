package main

import (
	"context"
	"errors"
	"log"

	"campusshare/internal/model"
	"campusshare/internal/repository"
	"campusshare/internal/service"
	"campusshare/pkg/apperror"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// seedDev inserts a small demo dataset on first boot of a development
// environment. It is idempotent: when the demo users already exist it
// does nothing.
func seedDev(db *gorm.DB) error {
	ctx := context.Background()
	store := repository.NewStore(db)

	priya, created, err := seedUser(ctx, store, "Priya Sharma", "priya@campus.edu", "CSE", 3)
	if err != nil {
		return err
	}
	if !created {
		return nil
	}

	rahul, _, err := seedUser(ctx, store, "Rahul Verma", "rahul@campus.edu", "ECE", 2)
	if err != nil {
		return err
	}

	resources := []*model.Resource{
		{
			Title:       "Data Structures Notes - Trees",
			Description: strPtr("Complete handwritten notes on binary trees, BST, AVL and heaps"),
			Subject:     "Data Structures",
			Semester:    3,
			Type:        model.TypeNotes,
			Tags:        datatypes.NewJSONSlice([]string{"trees", "bst", "avl"}),
			FileURL:     "https://res.cloudinary.com/demo/raw/upload/ds-trees-notes.pdf",
			UploaderID:  priya.ID,
		},
		{
			Title:       "Digital Electronics Past Paper 2024",
			Description: strPtr("End semester question paper with solutions"),
			Subject:     "Digital Electronics",
			Semester:    2,
			Type:        model.TypePastPaper,
			Tags:        datatypes.NewJSONSlice([]string{"past-paper", "2024"}),
			FileURL:     "https://res.cloudinary.com/demo/raw/upload/de-paper-2024.pdf",
			UploaderID:  rahul.ID,
		},
	}

	for _, resource := range resources {
		err := store.Transaction(ctx, func(tx repository.Store) error {
			if err := tx.Resources().Create(ctx, resource); err != nil {
				return err
			}
			_, err := service.AwardPoints(ctx, tx, resource.UploaderID, model.ActionUpload, &resource.ID)
			return err
		})
		if err != nil {
			return err
		}
	}

	log.Println("seeded development data")
	return nil
}

func seedUser(ctx context.Context, store repository.Store, name, email, department string, year int) (*model.User, bool, error) {
	existing, err := store.Users().FindByEmail(ctx, email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		return nil, false, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, false, err
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Department:   &department,
		Year:         &year,
	}
	if err := store.Users().Create(ctx, user); err != nil {
		return nil, false, err
	}
	return user, true, nil
}

func strPtr(s string) *string {
	return &s
}
