package handlers

// HandlerBundle groups every HTTP handler the router mounts.
type HandlerBundle struct {
	Patient  *PatientHandler
	Doctor   *DoctorHandler
	Admin    *AdminHandler
	Records  *RecordHandler
	Messages *MessageHandler
	Medicine *MedicineHandler
	Orders   *OrderHandler
	Health   *HealthHandler
	Symptoms *SymptomHandler
	Contact  *ContactHandler
	Auth     *AuthHandler
}
