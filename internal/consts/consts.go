package consts

const (
	CHARGE    = 1.602176634e-19 // Elementary charge (C)
	BOLTZMANN = 1.380649e-23    // Boltzmann constant (J/K)
	BOLTZEV   = 8.617e-5        // Boltzmann constant (eV/K)
	KELVIN    = 273.15          // 0 degC in Kelvin (K)
	EPSILON0  = 8.854e-12       // Vacuum permittivity (F/m)

	EPSILON_SI = 11.7 // Relative permittivity of silicon
	EPSILON_OX = 3.9  // Relative permittivity of SiO2

	DENSITY_SI   = 2.33   // Silicon density (g/cm^3)
	DENSITY_SIO2 = 2.27   // SiO2 density (g/cm^3)
	N_SI         = 5.0e22 // Silicon atomic density (atoms/cm^3)

	// Fraction of grown oxide thickness consumed from the substrate.
	// From the SiO2/Si density ratio 2.27/2.33 applied to molar volumes.
	OXIDE_SI_RATIO = 0.44

	MU_AIR = 1.81e-5 // Dynamic viscosity of air (Pa*s)
	P_ATM  = 101325  // Atmospheric pressure (Pa)
)
