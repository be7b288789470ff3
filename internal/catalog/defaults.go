package catalog

import "github.com/shopspring/decimal"

func price(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func basePrice(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

// DefaultConstants are the scalar prices published on the site.
func DefaultConstants() Constants {
	return Constants{
		BaseCameraPrice:    price(1200),
		CablePricePerMeter: price(80),
		DefaultCableLength: price(10),
	}
}

// DefaultTables returns fresh copies of the built-in option tables.
func DefaultTables() map[TableName][]Entry {
	return map[TableName][]Entry{
		TableNightVision: {
			{ID: "none", Name: "Sin visión nocturna", Price: price(0)},
			{ID: "infrared", Name: "Infrarroja (IR)", Description: "Visión nocturna con iluminación infrarroja, ideal para vigilancia básica con luz baja", Price: price(200)},
			{ID: "full-color", Name: "Full Color", Description: "Visión nocturna a todo color sin necesidad de iluminación IR adicional", Price: price(600)},
		},
		TableTechnology: {
			{ID: "analog", Name: "Analógica (HD-TVI/CVI)", Description: "Cableado coaxial hacia un DVR", Price: price(0)},
			{ID: "ip", Name: "IP", Description: "Cámaras de red hacia un NVR, mayor calidad y flexibilidad", Price: price(400)},
		},
		TablePhysicalType: {
			{ID: "bullet", Name: "Bala", Description: "Formato tubular para exteriores y pasillos", Price: price(0), BasePrice: basePrice(1200)},
			{ID: "dome", Name: "Domo", Description: "Diseño discreto ideal para interiores con visión panorámica", Price: price(200), BasePrice: basePrice(1400)},
			{ID: "ptz", Name: "PTZ", Description: "Control de movimiento Pan-Tilt-Zoom para máxima cobertura y seguimiento", Price: price(2300), BasePrice: basePrice(3500)},
			{ID: PhysicalWiFi, Name: "WiFi", Description: "Conexión inalámbrica sin necesidad de cableado", Price: price(400), BasePrice: basePrice(1600)},
		},
		TableResolution: {
			{ID: "2mp", Name: "2MP (1080p)", Price: price(0)},
			{ID: "4mp", Name: "4MP", Price: price(350)},
			{ID: "5mp", Name: "5MP", Price: price(500)},
			{ID: "8mp", Name: "8MP (4K)", Price: price(800)},
		},
		TablePlacement: {
			{ID: PlacementInterior, Name: "Interior", Price: price(200)},
			{ID: PlacementExterior, Name: "Exterior", Price: price(350)},
		},
		TableDVR: {
			{ID: Yes, Name: "Sí, ya tengo", Price: price(0)},
			{ID: No, Name: "No, necesito uno", Price: price(2500)},
		},
		TableInstallationService: {
			{ID: "none", Name: "Solo equipo", Description: "Sin instalación, el cliente instala", Price: price(0)},
			{ID: "basic", Name: "Instalación básica", Description: "Montaje y configuración sobre cableado existente", Price: price(300)},
			{ID: "cabling", Name: "Instalación con cableado", Description: "Montaje y tendido de cable nuevo", Price: price(400), RequiresCabling: true},
			{ID: "complete", Name: "Instalación completa", Description: "Cableado, canalización, montaje y configuración remota", Price: price(500), RequiresCabling: true},
		},
		TableStorage: {
			{ID: "1tb", Name: "Disco Duro 1TB", Price: price(1200)},
			{ID: "2tb", Name: "Disco Duro 2TB", Price: price(1800)},
			{ID: "4tb", Name: "Disco Duro 4TB", Price: price(2800)},
			{ID: "cloud", Name: "Almacenamiento en la nube", Price: price(500)},
		},
		TableRemoteAccess: {
			{ID: Yes, Name: "Sí", Price: price(500)},
			{ID: No, Name: "No", Price: price(0)},
		},
		TableMonitorNeed: {
			{ID: Yes, Name: "Sí", Price: price(0)},
			{ID: No, Name: "No", Price: price(0)},
		},
		TableMonitorSize: {
			{ID: "19in", Name: "Monitor 19\"", Price: price(1800)},
			{ID: "22in", Name: "Monitor 22\"", Price: price(2200)},
			{ID: "24in", Name: "Monitor 24\"", Price: price(2600)},
			{ID: "32in", Name: "Monitor 32\"", Price: price(3500)},
		},
	}
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return New(DefaultTables(), DefaultConstants())
}
