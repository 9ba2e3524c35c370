package local

import (
	"context"

	"github.com/google/uuid"

	"example.com/mil-eventos/backend/internal/models"
	"example.com/mil-eventos/backend/internal/store"
)

// ListSuppliers returns the user's suppliers, newest first.
func (s *Store) ListSuppliers(_ context.Context, userID uuid.UUID) ([]models.Supplier, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.loadDocument(userID)
	if err != nil {
		return nil, err
	}

	suppliers := make([]models.Supplier, len(doc.Suppliers))
	copy(suppliers, doc.Suppliers)
	return suppliers, nil
}

// InsertSupplier persists a new supplier record.
func (s *Store) InsertSupplier(_ context.Context, supplier models.Supplier) (models.Supplier, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.loadDocument(supplier.UserID)
	if err != nil {
		return models.Supplier{}, err
	}

	supplier.ID = uuid.New()
	supplier.CreatedAt = now()

	doc.Suppliers = append([]models.Supplier{supplier}, doc.Suppliers...)
	if err := s.saveDocument(supplier.UserID, doc); err != nil {
		return models.Supplier{}, err
	}

	return supplier, nil
}

// DeleteSupplier removes a supplier of the user.
func (s *Store) DeleteSupplier(_ context.Context, userID, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.loadDocument(userID)
	if err != nil {
		return err
	}

	for i, supplier := range doc.Suppliers {
		if supplier.ID != id {
			continue
		}

		doc.Suppliers = append(doc.Suppliers[:i], doc.Suppliers[i+1:]...)
		return s.saveDocument(userID, doc)
	}

	return store.ErrNotFound
}

// ListServicePackages returns the user's service packages.
func (s *Store) ListServicePackages(_ context.Context, userID uuid.UUID) ([]models.ServicePackage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.loadDocument(userID)
	if err != nil {
		return nil, err
	}

	packages := make([]models.ServicePackage, len(doc.Services))
	copy(packages, doc.Services)
	return packages, nil
}

// InsertServicePackage persists a new service package.
func (s *Store) InsertServicePackage(_ context.Context, pkg models.ServicePackage) (models.ServicePackage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.loadDocument(pkg.UserID)
	if err != nil {
		return models.ServicePackage{}, err
	}

	pkg.ID = uuid.New()
	pkg.CreatedAt = now()

	doc.Services = append(doc.Services, pkg)
	if err := s.saveDocument(pkg.UserID, doc); err != nil {
		return models.ServicePackage{}, err
	}

	return pkg, nil
}

// DeleteServicePackage removes a service package of the user.
func (s *Store) DeleteServicePackage(_ context.Context, userID, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.loadDocument(userID)
	if err != nil {
		return err
	}

	for i, pkg := range doc.Services {
		if pkg.ID != id {
			continue
		}

		doc.Services = append(doc.Services[:i], doc.Services[i+1:]...)
		return s.saveDocument(userID, doc)
	}

	return store.ErrNotFound
}

// GetProfile returns the user's business profile.
func (s *Store) GetProfile(_ context.Context, userID uuid.UUID) (models.BusinessProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.loadDocument(userID)
	if err != nil {
		return models.BusinessProfile{}, err
	}

	profile := doc.Profile
	profile.UserID = userID
	return profile, nil
}

// UpdateProfile replaces the business profile wholesale.
func (s *Store) UpdateProfile(_ context.Context, profile models.BusinessProfile) (models.BusinessProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.loadDocument(profile.UserID)
	if err != nil {
		return models.BusinessProfile{}, err
	}

	profile.UpdatedAt = now()
	doc.Profile = profile

	if err := s.saveDocument(profile.UserID, doc); err != nil {
		return models.BusinessProfile{}, err
	}

	return profile, nil
}
