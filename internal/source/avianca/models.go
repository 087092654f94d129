package avianca

// statusRequest is the body of a flight status lookup.
type statusRequest struct {
	Date         string `json:"Date"`
	Language     string `json:"Language"`
	FlightNumber string `json:"FlightNumber"`
}

// FlightStatusResponse is one record of the status API response array.
type FlightStatusResponse struct {
	FlightNumber           string `json:"FlightNumber"`
	Date                   string `json:"Date"`
	From                   string `json:"From"`
	To                     string `json:"To"`
	Status                 string `json:"Status"`
	EstimatedTimeDeparture string `json:"EstimatedTimeDeparture"`
	ConfirmedTimeDeparture string `json:"ConfirmedTimeDeparture"`
	EstimatedTimeArrive    string `json:"EstimatedTimeArrive"`
	ConfirmedTimeArrive    string `json:"ConfirmedTimeArrive"`
	AirportFrom            string `json:"AirportFrom"`
	AirportTo              string `json:"AirportTo"`
	CityTo                 string `json:"CityTo"`
	CityFrom               string `json:"CityFrom"`
	IataTo                 string `json:"IataTo"`
	IataFrom               string `json:"IataFrom"`
	AircraftType           string `json:"AircraftType"`
	OperatedBy             string `json:"OperatedBy"`
	SecondsActual          string `json:"SecondsActual"`
	SecondsSchedule        string `json:"SecondsSchedule"`
}
