package config

import (
	"fmt"
	"log"

	"edificio-hub/internal/adapters/persistence/models"
	"edificio-hub/internal/core/domain"
	"edificio-hub/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedAdminUser(); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}
	if err := s.seedDepartamentos(); err != nil {
		log.Printf("⚠️ Departamento seeder skipped: %v", err)
	}
	if err := s.seedAreasComunes(); err != nil {
		log.Printf("⚠️ Áreas comunes seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedAdminUser seeds default admin user
// This is for development/testing only
// In production, create admin through secure process
func (s *Seeder) seedAdminUser() error {
	var count int64
	s.db.Model(&models.Usuario{}).Where("rol = ?", domain.RolAdmin).Count(&count)
	if count > 0 {
		return nil // Admin already exists
	}

	hashedPassword, err := password.Hash("admin123456")
	if err != nil {
		return err
	}

	admin := &models.Usuario{
		Nombre:   "Administrador",
		Apellido: "General",
		Email:    "admin@edificio.local",
		Password: hashedPassword,
		Rol:      string(domain.RolAdmin),
		Activo:   true,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Admin user created: %s", admin.Email)
	return nil
}

// seedDepartamentos seeds an initial set of departamentos
func (s *Seeder) seedDepartamentos() error {
	var count int64
	s.db.Model(&models.Departamento{}).Count(&count)
	if count > 0 {
		return nil
	}

	departamentos := []models.Departamento{}
	for piso := 1; piso <= 4; piso++ {
		for unidad := 1; unidad <= 4; unidad++ {
			departamentos = append(departamentos, models.Departamento{
				Numero:            formatNumero(piso, unidad),
				Piso:              piso,
				MetrosCuadrados:   75,
				Habitaciones:      2,
				RentaMensual:      12000,
				CuotaMantenimiento: 1500,
				Estado:            string(domain.DeptoDisponible),
			})
		}
	}

	if err := s.db.Create(&departamentos).Error; err != nil {
		return err
	}

	log.Printf("✅ Seeded %d departamentos", len(departamentos))
	return nil
}

// seedAreasComunes seeds the default common areas
func (s *Seeder) seedAreasComunes() error {
	var count int64
	s.db.Model(&models.AreaComun{}).Count(&count)
	if count > 0 {
		return nil
	}

	areas := []models.AreaComun{
		{Nombre: "Salón de eventos", Descripcion: "Salón para reuniones y fiestas privadas", Capacidad: 60, CostoReserva: 800, HorarioApertura: "09:00", HorarioCierre: "23:00", Activa: true},
		{Nombre: "Gimnasio", Descripcion: "Gimnasio equipado", Capacidad: 15, HorarioApertura: "06:00", HorarioCierre: "22:00", Activa: true},
		{Nombre: "Roof garden", Descripcion: "Terraza en azotea con asadores", Capacidad: 30, CostoReserva: 500, HorarioApertura: "10:00", HorarioCierre: "22:00", Activa: true},
		{Nombre: "Alberca", Descripcion: "Alberca semiolímpica", Capacidad: 25, HorarioApertura: "07:00", HorarioCierre: "20:00", Activa: true},
	}

	if err := s.db.Create(&areas).Error; err != nil {
		return err
	}

	log.Printf("✅ Seeded %d áreas comunes", len(areas))
	return nil
}

func formatNumero(piso, unidad int) string {
	return fmt.Sprintf("%d0%d", piso, unidad)
}
