package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)

func TestParseCar(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantErr   string
		wantField string
		check     func(t *testing.T, car *Car)
	}{
		{
			name: "all fields",
			body: `{"make":"Toyota","model":"Corolla","year":2020,"price":19999.5,"color":"red","description":"one owner"}`,
			check: func(t *testing.T, car *Car) {
				assert.Equal(t, "Toyota", car.Make)
				assert.Equal(t, "Corolla", car.Model)
				assert.Equal(t, 2020, car.Year)
				assert.Equal(t, 19999.5, car.Price)
				require.NotNil(t, car.Color)
				assert.Equal(t, "red", *car.Color)
				require.NotNil(t, car.Description)
				assert.Equal(t, "one owner", *car.Description)
				assert.Equal(t, "2024-03-09 14:05:07", car.CreatedAt)
				assert.Empty(t, car.ID)
			},
		},
		{
			name: "optional fields absent",
			body: `{"make":"Honda","model":"Civic","year":2018,"price":12000}`,
			check: func(t *testing.T, car *Car) {
				assert.Nil(t, car.Color)
				assert.Nil(t, car.Description)
			},
		},
		{
			name: "numeric strings are coerced",
			body: `{"make":"Ford","model":"Focus","year":"2015","price":"8500.75"}`,
			check: func(t *testing.T, car *Car) {
				assert.Equal(t, 2015, car.Year)
				assert.Equal(t, 8500.75, car.Price)
			},
		},
		{
			name: "malformed numbers are coerced not rejected",
			body: `{"make":"Ford","model":"Ka","year":"2011 facelift","price":"cheap"}`,
			check: func(t *testing.T, car *Car) {
				assert.Equal(t, 2011, car.Year)
				assert.Equal(t, 0.0, car.Price)
			},
		},
		{
			name: "fractional year truncated",
			body: `{"make":"Kia","model":"Rio","year":2019.9,"price":1}`,
			check: func(t *testing.T, car *Car) {
				assert.Equal(t, 2019, car.Year)
			},
		},
		{
			name: "zero values count as present",
			body: `{"make":"","model":"","year":0,"price":0}`,
			check: func(t *testing.T, car *Car) {
				assert.Equal(t, 0, car.Year)
			},
		},
		{
			name: "numeric make is stringified",
			body: `{"make":911,"model":"Carrera","year":1999,"price":50000}`,
			check: func(t *testing.T, car *Car) {
				assert.Equal(t, "911", car.Make)
			},
		},
		{name: "invalid json", body: `{"make":`, wantErr: "Invalid JSON data"},
		{name: "empty object", body: `{}`, wantErr: "Invalid JSON data"},
		{name: "array", body: `[1,2]`, wantErr: "Invalid JSON data"},
		{name: "empty body", body: ``, wantErr: "Invalid JSON data"},
		{name: "missing make", body: `{"model":"X","year":1,"price":1}`, wantErr: "Missing required field: make", wantField: "make"},
		{name: "missing model", body: `{"make":"X","year":1,"price":1}`, wantErr: "Missing required field: model", wantField: "model"},
		{name: "missing year", body: `{"make":"X","model":"Y","price":1}`, wantErr: "Missing required field: year", wantField: "year"},
		{name: "missing price", body: `{"make":"X","model":"Y","year":1}`, wantErr: "Missing required field: price", wantField: "price"},
		{name: "null counts as missing", body: `{"make":"X","model":"Y","year":null,"price":1}`, wantErr: "Missing required field: year", wantField: "year"},
		{name: "first missing field wins", body: `{"color":"blue"}`, wantErr: "Missing required field: make", wantField: "make"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			car, err := ParseCar([]byte(tt.body), fixedNow)

			if tt.wantErr != "" {
				require.Error(t, err)
				var verr *ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, tt.wantErr, verr.Error())
				assert.Equal(t, tt.wantField, verr.Field)
				assert.Nil(t, car)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, car)
			tt.check(t, car)
		})
	}
}

func TestCar_ResponseRoundTrip(t *testing.T) {
	body := `{"make":"Toyota","model":"Yaris","year":2021,"price":15000.25,"color":"white","description":"hybrid"}`
	car, err := ParseCar([]byte(body), fixedNow)
	require.NoError(t, err)
	car.ID = "abc123"

	resp := car.Response()

	var in map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &in))
	for k := range in {
		assert.Contains(t, resp, k)
	}
	assert.Equal(t, "abc123", resp["id"])
	assert.Equal(t, "Toyota", resp["make"])
	assert.Equal(t, "Yaris", resp["model"])
	assert.Equal(t, 2021, resp["year"])
	assert.Equal(t, 15000.25, resp["price"])
	assert.Equal(t, "white", resp["color"])
	assert.Equal(t, "hybrid", resp["description"])
	assert.Equal(t, "2024-03-09 14:05:07", resp["created_at"])
}

func TestCar_IndexedSourceOmitsID(t *testing.T) {
	car := &Car{ID: "should-not-leak", Make: "Audi", Model: "A4", Year: 2017, Price: 21000}

	b, err := json.Marshal(car)
	require.NoError(t, err)

	var src map[string]any
	require.NoError(t, json.Unmarshal(b, &src))
	assert.NotContains(t, src, "id")
	assert.NotContains(t, src, "color")
	assert.Equal(t, "Audi", src["make"])
}

func TestFromSearchHit(t *testing.T) {
	source := map[string]any{"make": "BMW", "year": float64(2010)}

	out := FromSearchHit("doc-1", source)

	assert.Equal(t, "doc-1", out["id"])
	assert.Equal(t, "BMW", out["make"])
	assert.Equal(t, float64(2010), out["year"])
	assert.NotContains(t, source, "id", "source map must not be mutated")
}
