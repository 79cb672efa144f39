package condenser

// Air properties used when Options.AirProperties is FixedAir.

// Air density, kg/m3
const rhoAirFixed = 1.06

// Air dynamic viscosity, Pa s
const muAirFixed = 2.1e-5

// Air specific heat, J/(kg K)
const cpAirFixed = 1006.0

// Air thermal conductivity, W/(m K)
const kAirFixed = 0.028

// Vapor quality at which the condensation coefficient is evaluated, -
const DesignQuality = 0.5

// Tubes per circuit assumed when the circuit count is derived from the tube count
const defaultTubesPerCircuit = 6

const zeroCelsius = 273.15

// Duties below this magnitude are treated as zero, W
const zeroDutyTolerance = 1e-6
