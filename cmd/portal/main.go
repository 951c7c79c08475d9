package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/nikh2951/health-link/internal/catalog"
	"github.com/nikh2951/health-link/internal/config"
	"github.com/nikh2951/health-link/internal/ledger"
	"github.com/nikh2951/health-link/internal/model"
	"github.com/nikh2951/health-link/internal/registry"
	"github.com/nikh2951/health-link/internal/service/booking"
	"github.com/nikh2951/health-link/internal/service/dashboard"
	"github.com/nikh2951/health-link/internal/service/insight"
	"github.com/nikh2951/health-link/internal/service/session"
	"github.com/nikh2951/health-link/internal/store"
	"github.com/nikh2951/health-link/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(&logger.Config{Level: cfg.Logging.Level, Output: os.Stderr})

	var recordStore store.RecordStore
	switch cfg.Storage.Backend {
	case "file":
		fs, err := store.NewFileStore(cfg.Storage.Dir, appLogger)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to open file store")
		}
		recordStore = fs
	default:
		recordStore = store.NewMemoryStore(appLogger)
	}

	cat, err := catalog.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load medical directory")
	}

	reg := registry.New(recordStore)
	led := ledger.New(recordStore)
	sess := session.NewService(recordStore, reg, appLogger)

	var provider insight.Provider
	if cfg.Insight.Endpoint != "" && cfg.Insight.APIKey != "" {
		provider = insight.NewClient(insight.ClientConfig{
			Endpoint:       cfg.Insight.Endpoint,
			APIKey:         cfg.Insight.APIKey,
			Model:          cfg.Insight.Model,
			Timeout:        cfg.Insight.Timeout(),
			RequestsPerMin: cfg.Insight.RequestsPerMin,
		}, appLogger)
	} else {
		provider = insight.Static{Text: insight.Fallback}
	}

	dash := dashboard.NewService(led, provider, appLogger)

	app := &portal{
		in:       bufio.NewScanner(os.Stdin),
		session:  sess,
		catalog:  cat,
		registry: reg,
		ledger:   led,
		dash:     dash,
	}
	app.run(context.Background())
}

type portal struct {
	in       *bufio.Scanner
	session  *session.Service
	catalog  *catalog.Catalog
	registry *registry.Registry
	ledger   *ledger.Ledger
	dash     *dashboard.Service

	// viewGen invalidates in-flight insight deliveries once the dashboard
	// is left; a stale delivery is dropped silently.
	mu      sync.Mutex
	viewGen int
}

func (p *portal) run(ctx context.Context) {
	fmt.Println("Health Link")
	for {
		switch p.session.View() {
		case session.ViewWelcome:
			if !p.welcome() {
				return
			}
		case session.ViewLogin:
			p.login(ctx)
		case session.ViewOnboarding:
			p.onboarding(ctx)
		default:
			p.menu(ctx)
		}
	}
}

func (p *portal) prompt(label string) string {
	fmt.Printf("%s: ", label)
	if !p.in.Scan() {
		return ""
	}
	return strings.TrimSpace(p.in.Text())
}

func (p *portal) pick(label string, options []string) string {
	fmt.Println(label)
	for i, opt := range options {
		fmt.Printf("  %d) %s\n", i+1, opt)
	}
	choice := p.prompt("choice")
	idx, err := strconv.Atoi(choice)
	if err != nil || idx < 1 || idx > len(options) {
		return ""
	}
	return options[idx-1]
}

// welcome returns false when the user quits the portal.
func (p *portal) welcome() bool {
	fmt.Println("\n1) Patient Portal  2) Doctor Portal  q) Quit")
	switch p.prompt("select") {
	case "1":
		_ = p.session.SelectRole(model.RolePatient)
	case "2":
		_ = p.session.SelectRole(model.RoleDoctor)
	case "q":
		return false
	}
	return true
}

func (p *portal) login(ctx context.Context) {
	email := p.prompt("email")
	pin := p.prompt("6-character PIN")
	if err := p.session.Login(ctx, email, pin); err != nil {
		fmt.Println("!", err)
	}
}

func (p *portal) onboarding(ctx context.Context) {
	fmt.Println("\nFirst login, tell us about yourself.")
	var err error
	if p.session.Role() == model.RolePatient {
		profile := model.PatientProfile{
			FullName:        p.prompt("full name"),
			DateOfBirth:     p.prompt("date of birth (YYYY-MM-DD)"),
			BloodGroup:      p.prompt("blood group"),
			Height:          p.prompt("height (cm)"),
			Weight:          p.prompt("weight (kg)"),
			RecentSurgeries: p.prompt("recent surgeries"),
			PreviousDoctor:  p.prompt("previous doctor"),
		}
		if meds := p.prompt("current medicines (comma separated)"); meds != "" {
			for _, m := range strings.Split(meds, ",") {
				profile.LatestMedicines = append(profile.LatestMedicines, strings.TrimSpace(m))
			}
		}
		profile.HasBloodPressure = p.prompt("hypertension? (y/n)") == "y"
		profile.HasBloodSugar = p.prompt("diabetes? (y/n)") == "y"
		profile.HasThyroid = p.prompt("thyroid condition? (y/n)") == "y"
		err = p.session.CompletePatientOnboarding(ctx, profile)
	} else {
		profile := model.DoctorProfile{
			FullName:        p.prompt("full name"),
			Age:             p.prompt("age"),
			Specialization:  p.prompt("specialization"),
			HospitalName:    p.prompt("hospital name"),
			ExperienceYears: p.prompt("years of experience"),
			LicenseNumber:   p.prompt("license number"),
			ConsultationFee: p.prompt("consultation fee"),
		}
		err = p.session.CompleteDoctorOnboarding(ctx, profile)
	}
	if err != nil {
		fmt.Println("!", err)
	}
}

func (p *portal) menu(ctx context.Context) {
	fmt.Println("\n1) Home  2) Dashboard  3) Appointments  4) Prescriptions  5) Settings  6) Book appointment  7) Logout")
	switch p.prompt("select") {
	case "1":
		_ = p.session.Navigate(session.ViewHome)
		p.home()
	case "2":
		_ = p.session.Navigate(session.ViewDashboard)
		p.showDashboard(ctx)
	case "3":
		_ = p.session.Navigate(session.ViewAppointments)
		p.showAppointments(ctx)
	case "4":
		_ = p.session.Navigate(session.ViewPrescriptions)
		p.showPrescriptions()
	case "5":
		_ = p.session.Navigate(session.ViewSettings)
		p.settings(ctx)
	case "6":
		p.book(ctx)
	case "7":
		p.bumpViewGen()
		p.session.Logout()
	}
}

func (p *portal) home() {
	name := ""
	if pt := p.session.Patient(); pt != nil {
		name = pt.FullName
	} else if dr := p.session.Doctor(); dr != nil {
		name = "Dr. " + dr.FullName
	}
	fmt.Printf("\nWelcome back, %s (%s)\n", name, p.session.Email())
}

func (p *portal) bumpViewGen() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.viewGen++
	return p.viewGen
}

func (p *portal) showDashboard(ctx context.Context) {
	gen := p.bumpViewGen()

	if p.session.Role() == model.RoleDoctor {
		p.doctorDashboard(ctx)
		return
	}

	overview, err := p.dash.PatientOverview(ctx, p.session.Patient(), p.session.Email())
	if err != nil {
		fmt.Println("!", err)
		return
	}
	fmt.Println()
	for _, stat := range overview.Stats {
		fmt.Printf("  %-16s %-10s (%s)\n", stat.Label, stat.Value, stat.Trend)
	}
	fmt.Println("  Insight:", overview.Insight)

	p.dash.FetchInsight(ctx, p.dash.CurrentVitals(), func(text string) {
		p.mu.Lock()
		defer p.mu.Unlock()
		if p.viewGen != gen {
			return
		}
		fmt.Println("\n  Insight:", text)
	})
}

func (p *portal) doctorDashboard(ctx context.Context) {
	queue, err := p.dash.DoctorQueue(ctx, p.session.Email())
	if err != nil {
		fmt.Println("!", err)
		return
	}
	if len(queue) == 0 {
		fmt.Println("\nNo appointments in your queue yet.")
		return
	}
	fmt.Println()
	for _, appt := range queue {
		fmt.Printf("  %s %s  %s (%s)\n", appt.Date, appt.Time, appt.PatientName, appt.PatientEmail)
		record, err := p.dash.QueuePatient(ctx, p.session, appt.PatientEmail)
		if err != nil {
			fmt.Println("    no medical record on file")
			continue
		}
		fmt.Printf("    blood group %s, medicines: %s\n", record.BloodGroup, strings.Join(record.LatestMedicines, ", "))
	}
}

func (p *portal) showAppointments(ctx context.Context) {
	var (
		records []model.AppointmentRecord
		err     error
	)
	if p.session.Role() == model.RolePatient {
		records, err = p.ledger.ByPatient(ctx, p.session.Email())
	} else {
		records, err = p.ledger.ByDoctor(ctx, p.session.Email())
	}
	if err != nil {
		fmt.Println("!", err)
		return
	}
	if len(records) == 0 {
		fmt.Println("\nNo appointments booked yet.")
		return
	}
	fmt.Println()
	for _, r := range records {
		fmt.Printf("  %s %s  %s at %s, %s [%s]\n", r.Date, r.Time, r.Doctor, r.Hospital, r.Area, r.PaymentStatus)
	}
}

func (p *portal) showPrescriptions() {
	pt := p.session.Patient()
	if pt == nil || len(pt.LatestMedicines) == 0 {
		fmt.Println("\nNo current medicines listed in your profile.")
		return
	}
	fmt.Println()
	for _, med := range pt.LatestMedicines {
		fmt.Println("  -", med)
	}
}

func (p *portal) settings(ctx context.Context) {
	if p.session.Role() == model.RolePatient {
		profile := *p.session.Patient()
		if w := p.prompt("body weight (kg)"); w != "" {
			profile.Weight = w
		}
		if sg := p.prompt("surgeries history"); sg != "" {
			profile.RecentSurgeries = sg
		}
		if meds := p.prompt("current medicines (comma separated)"); meds != "" {
			profile.LatestMedicines = nil
			for _, m := range strings.Split(meds, ",") {
				profile.LatestMedicines = append(profile.LatestMedicines, strings.TrimSpace(m))
			}
		}
		if err := p.session.UpdatePatientSettings(ctx, profile); err != nil {
			fmt.Println("!", err)
			return
		}
	} else {
		profile := *p.session.Doctor()
		if h := p.prompt("hospital name"); h != "" {
			profile.HospitalName = h
		}
		if fee := p.prompt("consultation fee"); fee != "" {
			profile.ConsultationFee = fee
		}
		if err := p.session.UpdateDoctorSettings(ctx, profile); err != nil {
			fmt.Println("!", err)
			return
		}
	}
	fmt.Println("Profile updated.")
}

func (p *portal) book(ctx context.Context) {
	if p.session.Role() != model.RolePatient {
		fmt.Println("Only patients can book appointments.")
		return
	}

	sel := booking.NewSelector(p.catalog, p.registry, p.ledger)
	area := p.pick("Select area:", sel.Areas())
	if area == "" {
		return
	}
	if err := sel.SelectArea(area); err != nil {
		fmt.Println("!", err)
		return
	}

	hospital := p.pick("Select hospital:", sel.Hospitals())
	if hospital == "" {
		return
	}
	if err := sel.SelectHospital(hospital); err != nil {
		fmt.Println("!", err)
		return
	}

	candidates, err := sel.Candidates(ctx)
	if err != nil {
		fmt.Println("!", err)
		return
	}
	names := make([]string, 0, len(candidates))
	for _, c := range candidates {
		names = append(names, c.Name)
	}
	doctor := p.pick("Select doctor:", names)
	if doctor == "" {
		return
	}
	if err := sel.SelectDoctor(ctx, doctor); err != nil {
		fmt.Println("!", err)
		return
	}

	if err := sel.SelectDate(p.prompt("date (YYYY-MM-DD)")); err != nil {
		fmt.Println("!", err)
		return
	}
	slot := p.pick("Select time:", model.TimeSlots)
	if slot == "" {
		return
	}
	if err := sel.SelectTime(slot); err != nil {
		fmt.Println("!", err)
		return
	}

	record, err := sel.Confirm(ctx, p.session.Patient().FullName, p.session.Email())
	if err != nil {
		fmt.Println("!", err)
		return
	}
	fmt.Printf("Booked %s at %s on %s %s [%s]\n", record.Doctor, record.Hospital, record.Date, record.Time, record.PaymentStatus)
}
