package catalog

// Sample returns the built-in satellite command catalog written by
// `cmdref sample`. It doubles as the shared fixture for tests.
func Sample() *Catalog {
	cmd := func(name, hex, desc, params string) CommandDef {
		return CommandDef{Command: name, HexCode: hex, Description: desc, Params: Text(params)}
	}
	param := func(id, typ, enumSet, rng string) ParamMeta {
		p := ParamMeta{ParamID: id, Type: typ}
		if enumSet != "" {
			p.EnumSet = Text(enumSet)
		}
		if rng != "" {
			p.Range = Text(rng)
		}
		return p
	}

	commands := []CommandDef{
		cmd("CMD_ARM_SYSTEM", "0xAF23", "Arms the safety-critical subsystems for operation", "Mode,Delay"),
		cmd("CMD_SET_MODE", "0xB104", "Sets the system operational mode (SAFE/LIVE/TEST)", "Mode"),
		cmd("CMD_DEPLOY_ANTENNA", "0xC302", "Deploys the primary communication antenna", "DeployType,Confirm"),
		cmd("CMD_POWER_ON_SUBSYSTEM", "0xD405", "Powers on specified subsystem with safety checks", "SubsystemID,PowerLevel"),
		cmd("CMD_POWER_OFF_SUBSYSTEM", "0xD406", "Powers off specified subsystem gracefully", "SubsystemID,Confirm"),
		cmd("CMD_SET_ATTITUDE", "0xE507", "Sets satellite attitude using reaction wheels", "Roll,Pitch,Yaw,Duration"),
		cmd("CMD_START_RECORDING", "0xF608", "Starts data recording from all active sensors", "DataType,Compression"),
		cmd("CMD_STOP_RECORDING", "0xF609", "Stops data recording and closes files", "Confirm"),
		cmd("CMD_TRANSMIT_DATA", "0xG710", "Initiates data transmission to ground station", "GroundStation,Frequency,PowerLevel"),
		cmd("CMD_ENTER_SAFE_MODE", "0xH811", "Forces satellite into safe mode immediately", "Reason"),
		cmd("CMD_CALIBRATE_SENSOR", "0xI912", "Calibrates specified sensor with reference values", "SensorID,CalType"),
		cmd("CMD_UPDATE_ORBIT", "0xJ013", "Updates orbital parameters and trajectory", "Altitude,Inclination,RAAN"),
		cmd("CMD_ACTIVATE_PAYLOAD", "0xK114", "Activates scientific payload instruments", "PayloadID,Config"),
		cmd("CMD_SHUTDOWN_PAYLOAD", "0xK115", "Shuts down payload to conserve power", "PayloadID,SaveState"),
	}

	params := []ParamMeta{
		param("Mode", "enum", "ARM_MODE", ""),
		param("Delay", "int", "", "0-300"),
		param("DeployType", "enum", "DEPLOY_TYPE", ""),
		param("Confirm", "bool", "", ""),
		param("SubsystemID", "enum", "SUBSYSTEM_ID", ""),
		param("PowerLevel", "float", "", "0.0-1.0"),
		param("Roll", "float", "", "-180.0-180.0"),
		param("Pitch", "float", "", "-90.0-90.0"),
		param("Yaw", "float", "", "-180.0-180.0"),
		param("Duration", "int", "", "1-3600"),
		param("DataType", "enum", "DATA_TYPE", ""),
		param("Compression", "enum", "COMPRESSION_TYPE", ""),
		param("GroundStation", "enum", "GROUND_STATION", ""),
		param("Frequency", "float", "", "2000.0-2500.0"),
		param("Reason", "enum", "SAFE_REASON", ""),
		param("SensorID", "enum", "SENSOR_ID", ""),
		param("CalType", "enum", "CAL_TYPE", ""),
		param("Altitude", "float", "", "200.0-2000.0"),
		param("Inclination", "float", "", "0.0-180.0"),
		param("RAAN", "float", "", "0.0-360.0"),
		param("PayloadID", "enum", "PAYLOAD_ID", ""),
		param("Config", "enum", "PAYLOAD_CONFIG", ""),
		param("SaveState", "bool", "", ""),
	}

	var enums []EnumLabel
	group := func(set string, first int, labels ...string) {
		for i, label := range labels {
			enums = append(enums, EnumLabel{EnumSet: set, Value: first + i, Label: label})
		}
	}
	group("ARM_MODE", 0, "SAFE", "LIVE", "TEST")
	group("DEPLOY_TYPE", 0, "MAIN", "BACKUP")
	group("SUBSYSTEM_ID", 1, "COMMS", "POWER", "ATTITUDE", "THERMAL", "PAYLOAD")
	group("DATA_TYPE", 0, "TELEMETRY", "SCIENCE", "HOUSEKEEPING", "LOGS")
	group("COMPRESSION_TYPE", 0, "NONE", "LOSSLESS", "LOSSY")
	group("GROUND_STATION", 1, "HOUSTON", "MADRID", "CANBERRA")
	group("SAFE_REASON", 0, "POWER_LOW", "TEMP_HIGH", "COMM_LOSS", "MANUAL")
	group("SENSOR_ID", 1, "GYRO", "MAGNETOMETER", "SUN_SENSOR", "STAR_TRACKER")
	group("CAL_TYPE", 0, "FACTORY", "FIELD", "DRIFT")
	group("PAYLOAD_ID", 1, "CAMERA", "SPECTROMETER", "RADAR")
	group("PAYLOAD_CONFIG", 0, "LOW_POWER", "NORMAL", "HIGH_RESOLUTION")

	return New(commands, params, enums)
}
