package roadtrip

// Collections and the fields of their documents the server addresses by name.
// Every other field of a trip or stop is opaque.
const (
	TripsCollection = "trips"
	StopsCollection = "stops"

	IDField     = "_id"
	StopIDField = "stopId"
	StopsField  = "stops"
	TripIDField = "tripId"
	UserIDField = "userId"
)

// A Document is a schema-less record held in a document store collection.
//
// Nested objects are a map[string]any or a Document; arrays are a []any.
type Document map[string]any

// GetString returns the value stored under key when it is a string.
// Otherwise, GetString returns "".
func (d Document) GetString(key string) string {
	s, _ := d[key].(string)
	return s
}

// Stops returns the stops embedded in a document from the stops collection.
//
// A stops document groups the stops of a single trip:
//
//	{"tripId": "t1", "stops": [{"stopId": "s1"}, {"stopId": "s2"}]}
//
// Stops preserves the order they are stored in.
// Elements that are not objects are skipped.
func (d Document) Stops() []Document {
	var stops []Document
	switch raw := d[StopsField].(type) {
	case []Document:
		stops = append(stops, raw...)

	case []map[string]any:
		for _, s := range raw {
			stops = append(stops, Document(s))
		}

	case []any:
		for _, item := range raw {
			switch s := item.(type) {
			case Document:
				stops = append(stops, s)
			case map[string]any:
				stops = append(stops, Document(s))
			}
		}
	}

	return stops
}

// Stop returns the embedded stop whose stopId is stopID.
func (d Document) Stop(stopID string) (Document, bool) {
	for _, s := range d.Stops() {
		if s.GetString(StopIDField) == stopID {
			return s, true
		}
	}

	return nil, false
}

// A Filter selects documents whose fields equal the values it maps them to.
//
// A key may be a dotted path, e.g., "stops.stopId".
// When a path crosses an array, a document matches if any element matches.
// The zero-value Filter selects every document.
type Filter map[string]any

// ByTripID selects documents belonging to the trip identified by id.
func ByTripID(id string) Filter { return Filter{TripIDField: id} }

// ByUserID selects documents owned by the user identified by id.
func ByUserID(id string) Filter { return Filter{UserIDField: id} }

// ByStop selects the stops document of tripID embedding the stop identified by stopID.
func ByStop(tripID, stopID string) Filter {
	return Filter{
		TripIDField:                    tripID,
		StopsField + "." + StopIDField: stopID,
	}
}
